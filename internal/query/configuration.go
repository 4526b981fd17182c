package query

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/temirov/gitsense/internal/gitcommand"
)

const (
	calendarDateLayoutConstant                 = "2006-01-02"
	configurationPathRequiredMessageConstant   = "repository configuration path must be provided"
	configurationLoadErrorTemplateConstant     = "failed to load repository configuration: %w"
	configurationParseErrorTemplateConstant    = "failed to parse repository configuration: %w"
	calendarDateParseErrorTemplateConstant     = "invalid calendar date %q, expected YYYY-MM-DD: %w"
	authorIdentityMissingErrorTemplateConstant = "author %d has neither git_id nor aliases"
)

// ErrRepositoryRootMissing indicates the configuration names no repository to analyze.
var ErrRepositoryRootMissing = errors.New("repository configuration must define repository_root")

// CalendarDate is a YYYY-MM-DD day decoded from YAML.
type CalendarDate struct {
	time.Time
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (date *CalendarDate) UnmarshalYAML(node *yaml.Node) error {
	var rawValue string
	if decodeError := node.Decode(&rawValue); decodeError != nil {
		return decodeError
	}
	parsedDate, parseError := ParseCalendarDate(rawValue)
	if parseError != nil {
		return parseError
	}
	date.Time = parsedDate
	return nil
}

// ParseCalendarDate parses a YYYY-MM-DD day.
func ParseCalendarDate(value string) (time.Time, error) {
	parsedDate, parseError := time.Parse(calendarDateLayoutConstant, strings.TrimSpace(value))
	if parseError != nil {
		return time.Time{}, fmt.Errorf(calendarDateParseErrorTemplateConstant, value, parseError)
	}
	return parsedDate, nil
}

// RepositoryConfiguration describes one repository analysis request.
type RepositoryConfiguration struct {
	RepositoryRoot string                      `yaml:"repository_root"`
	Branch         string                      `yaml:"branch"`
	SinceDate      *CalendarDate               `yaml:"since_date"`
	UntilDate      *CalendarDate               `yaml:"until_date"`
	Formats        []string                    `yaml:"formats"`
	Authors        []gitcommand.AuthorIdentity `yaml:"authors"`
}

// LoadRepositoryConfiguration reads and validates a repository configuration file.
func LoadRepositoryConfiguration(filePath string) (RepositoryConfiguration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return RepositoryConfiguration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return RepositoryConfiguration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}
	return ParseRepositoryConfiguration(contentBytes)
}

// ParseRepositoryConfiguration decodes and validates YAML content.
func ParseRepositoryConfiguration(contentBytes []byte) (RepositoryConfiguration, error) {
	var configuration RepositoryConfiguration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return RepositoryConfiguration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	configuration.RepositoryRoot = strings.TrimSpace(configuration.RepositoryRoot)
	if len(configuration.RepositoryRoot) == 0 {
		return RepositoryConfiguration{}, ErrRepositoryRootMissing
	}
	configuration.Branch = strings.TrimSpace(configuration.Branch)

	for authorIndex := range configuration.Authors {
		if len(configuration.Authors[authorIndex].Candidates()) == 0 {
			return RepositoryConfiguration{}, fmt.Errorf(authorIdentityMissingErrorTemplateConstant, authorIndex)
		}
	}
	return configuration, nil
}

// SinceTime returns the lower date bound, or nil when unbounded.
func (configuration RepositoryConfiguration) SinceTime() *time.Time {
	return calendarDateTime(configuration.SinceDate)
}

// UntilTime returns the upper date bound, or nil when unbounded.
func (configuration RepositoryConfiguration) UntilTime() *time.Time {
	return calendarDateTime(configuration.UntilDate)
}

// BranchOrDefault returns the configured branch, or fallback when none is set.
func (configuration RepositoryConfiguration) BranchOrDefault(fallback string) string {
	if len(configuration.Branch) == 0 {
		return fallback
	}
	return configuration.Branch
}

// LogQueries returns one commit log query per configured author.
func (configuration RepositoryConfiguration) LogQueries() []gitcommand.LogQuery {
	logQueries := make([]gitcommand.LogQuery, 0, len(configuration.Authors))
	for _, author := range configuration.Authors {
		logQueries = append(logQueries, gitcommand.LogQuery{
			SinceDate: configuration.SinceTime(),
			UntilDate: configuration.UntilTime(),
			Author:    author,
			Formats:   configuration.Formats,
		})
	}
	return logQueries
}

func calendarDateTime(date *CalendarDate) *time.Time {
	if date == nil {
		return nil
	}
	dateTime := date.Time
	return &dateTime
}
