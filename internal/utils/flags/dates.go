package flags

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	calendarDateLayoutConstant     = "2006-01-02"
	calendarDateTypeNameConstant   = "date"
	calendarDateParseErrorTemplate = "invalid date %q, expected YYYY-MM-DD"
	// SinceFlagName exposes the lower date bound flag name.
	SinceFlagName = "since"
	// SinceFlagUsage describes the lower date bound flag.
	SinceFlagUsage = "Earliest commit day (YYYY-MM-DD), inclusive"
	// UntilFlagName exposes the upper date bound flag name.
	UntilFlagName = "until"
	// UntilFlagUsage describes the upper date bound flag.
	UntilFlagUsage = "Latest commit day (YYYY-MM-DD), inclusive"
)

// CalendarDateValue is a pflag.Value holding an optional YYYY-MM-DD day.
type CalendarDateValue struct {
	target **time.Time
}

// NewCalendarDateValue binds the value to target; target stays nil until the flag is set.
func NewCalendarDateValue(target **time.Time) *CalendarDateValue {
	return &CalendarDateValue{target: target}
}

// Set implements pflag.Value.
func (value *CalendarDateValue) Set(rawValue string) error {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		*value.target = nil
		return nil
	}
	parsedDate, parseError := time.Parse(calendarDateLayoutConstant, trimmedValue)
	if parseError != nil {
		return fmt.Errorf(calendarDateParseErrorTemplate, rawValue)
	}
	*value.target = &parsedDate
	return nil
}

// String implements pflag.Value.
func (value *CalendarDateValue) String() string {
	if value == nil || value.target == nil || *value.target == nil {
		return ""
	}
	return (*value.target).Format(calendarDateLayoutConstant)
}

// Type implements pflag.Value.
func (value *CalendarDateValue) Type() string {
	return calendarDateTypeNameConstant
}

// DateRangeFlagValues stores the optional date bounds parsed from the command line.
type DateRangeFlagValues struct {
	Since *time.Time
	Until *time.Time
}

// BindDateRangeFlags attaches --since and --until to the provided command.
func BindDateRangeFlags(command *cobra.Command) *DateRangeFlagValues {
	values := &DateRangeFlagValues{}
	if command == nil {
		return values
	}
	command.Flags().Var(NewCalendarDateValue(&values.Since), SinceFlagName, SinceFlagUsage)
	command.Flags().Var(NewCalendarDateValue(&values.Until), UntilFlagName, UntilFlagUsage)
	return values
}

// BindDateFlag attaches a single optional date flag to the provided command.
func BindDateFlag(command *cobra.Command, flagName string, usage string) **time.Time {
	var date *time.Time
	if command != nil {
		command.Flags().Var(NewCalendarDateValue(&date), flagName, usage)
	}
	return &date
}
