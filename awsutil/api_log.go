package awsutil

import (
	"github.com/mongodb/grip/message"
)

// MakeAPILogMessage returns a structured log message for an API call and its
// input.
func MakeAPILogMessage(op string, in interface{}) message.Fields {
	return message.Fields{
		"message": "AWS API call",
		"op":      op,
		"input":   in,
	}
}
