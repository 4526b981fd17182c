package gitcommand

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultBoundaryOffset anchors since/until bounds to UTC+8.
	DefaultBoundaryOffset              = "+08:00"
	calendarDayLayoutConstant          = "2006-01-02"
	offsetLayoutConstant               = "-07:00"
	startOfDayClockConstant            = "T00:00:00"
	endOfDayClockConstant              = "T23:59:59"
	invalidOffsetErrorTemplateConstant = "invalid boundary offset %q: %w"
)

// DateBoundaryFormatter renders calendar days as ISO-8601 bounds in a fixed offset.
//
// Only the calendar day of the supplied time is used, read in that time's own
// location; the clock and offset of the bound always come from the formatter.
type DateBoundaryFormatter struct {
	offsetLabel string
}

// NewDateBoundaryFormatter parses offset in "+hh:mm" form.
func NewDateBoundaryFormatter(offset string) (DateBoundaryFormatter, error) {
	trimmedOffset := strings.TrimSpace(offset)
	parsedOffset, parseError := time.Parse(offsetLayoutConstant, trimmedOffset)
	if parseError != nil {
		return DateBoundaryFormatter{}, fmt.Errorf(invalidOffsetErrorTemplateConstant, offset, parseError)
	}
	return DateBoundaryFormatter{offsetLabel: parsedOffset.Format(offsetLayoutConstant)}, nil
}

// DefaultDateBoundaryFormatter returns the formatter anchored to DefaultBoundaryOffset.
func DefaultDateBoundaryFormatter() DateBoundaryFormatter {
	return DateBoundaryFormatter{offsetLabel: DefaultBoundaryOffset}
}

// FormatSince renders the start of the day containing date.
func (formatter DateBoundaryFormatter) FormatSince(date time.Time) string {
	return date.Format(calendarDayLayoutConstant) + startOfDayClockConstant + formatter.offset()
}

// FormatUntil renders the end of the day containing date.
func (formatter DateBoundaryFormatter) FormatUntil(date time.Time) string {
	return date.Format(calendarDayLayoutConstant) + endOfDayClockConstant + formatter.offset()
}

func (formatter DateBoundaryFormatter) offset() string {
	if len(formatter.offsetLabel) == 0 {
		return DefaultBoundaryOffset
	}
	return formatter.offsetLabel
}
