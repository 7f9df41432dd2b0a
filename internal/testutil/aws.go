package testutil

import (
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/helia-ci/sable/awsutil"
)

// AWSRole returns the AWS IAM role from the environment variable.
func AWSRole() string {
	return os.Getenv("AWS_ROLE")
}

// ValidIntegrationAWSOptions returns valid options to create an AWS client
// that can make actual requests to AWS for integration testing. Credentials
// and the region will be extracted from the standard environment variables.
func ValidIntegrationAWSOptions(hc *http.Client) awsutil.ClientOptions {
	options := awsutil.NewClientOptions().
		SetRegion(os.Getenv("AWS_REGION")).
		SetHTTPClient(hc)
	if role := AWSRole(); role != "" {
		options.SetRole(role)
	}
	return *options
}

// ValidNonIntegrationAWSOptions returns valid options to create an AWS client
// that doesn't make any actual requests to AWS.
func ValidNonIntegrationAWSOptions() awsutil.ClientOptions {
	return *awsutil.NewClientOptions().
		SetCredentialsProvider(credentials.NewStaticCredentialsProvider("", "", "")).
		SetRegion("us-east-1")
}
