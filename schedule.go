package sable

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Interval is a parsed recurring schedule expression. Two forms are
// supported, matching the scheduler's expression syntax: "rate(value unit)"
// with a unit of minute(s), hour(s), or day(s), and "cron(...)" with the
// six-field minutes/hours/day-of-month/month/day-of-week/year form.
type Interval struct {
	expression string
	rate       time.Duration
	cron       cron.Schedule
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ParseInterval parses a schedule expression into an interval.
func ParseInterval(expression string) (*Interval, error) {
	switch {
	case strings.HasPrefix(expression, "rate(") && strings.HasSuffix(expression, ")"):
		rate, err := parseRate(expression[len("rate(") : len(expression)-1])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing rate expression '%s'", expression)
		}
		return &Interval{expression: expression, rate: rate}, nil
	case strings.HasPrefix(expression, "cron(") && strings.HasSuffix(expression, ")"):
		sched, err := parseCron(expression[len("cron(") : len(expression)-1])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing cron expression '%s'", expression)
		}
		return &Interval{expression: expression, cron: sched}, nil
	default:
		return nil, errors.Errorf("schedule expression '%s' must be of the form rate(...) or cron(...)", expression)
	}
}

func parseRate(body string) (time.Duration, error) {
	fields := strings.Fields(body)
	if len(fields) != 2 {
		return 0, errors.New("rate must have a value and a unit")
	}

	value, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, errors.Wrap(err, "parsing rate value")
	}
	if value <= 0 {
		return 0, errors.New("rate value must be positive")
	}

	var unit time.Duration
	switch strings.TrimSuffix(fields[1], "s") {
	case "minute":
		unit = time.Minute
	case "hour":
		unit = time.Hour
	case "day":
		unit = 24 * time.Hour
	default:
		return 0, errors.Errorf("unrecognized rate unit '%s'", fields[1])
	}

	// The scheduler requires singular units for a value of one and plural
	// units otherwise.
	plural := strings.HasSuffix(fields[1], "s")
	if value == 1 && plural {
		return 0, errors.Errorf("rate value 1 requires a singular unit, not '%s'", fields[1])
	}
	if value != 1 && !plural {
		return 0, errors.Errorf("rate value %d requires a plural unit, not '%s'", value, fields[1])
	}

	return time.Duration(value) * unit, nil
}

func parseCron(body string) (cron.Schedule, error) {
	fields := strings.Fields(body)
	if len(fields) != 6 {
		return nil, errors.Errorf("cron must have 6 fields, not %d", len(fields))
	}
	// The trailing year field has no equivalent in the cron parser, so
	// only the match-everything form is supported.
	if fields[5] != "*" {
		return nil, errors.Errorf("unsupported year field '%s'", fields[5])
	}

	// The scheduler writes '?' where standard cron writes '*'.
	spec := strings.ReplaceAll(strings.Join(fields[:5], " "), "?", "*")

	sched, err := cronParser.Parse(spec)
	if err != nil {
		return nil, errors.Wrap(err, "parsing cron fields")
	}

	return sched, nil
}

// Next returns the first tick of the schedule after the given time.
func (i *Interval) Next(from time.Time) time.Time {
	if i.cron != nil {
		return i.cron.Next(from)
	}
	return from.Add(i.rate)
}

// Rate returns the fixed period for rate-form intervals and zero for
// cron-form intervals.
func (i *Interval) Rate() time.Duration {
	return i.rate
}

func (i *Interval) String() string {
	return i.expression
}
