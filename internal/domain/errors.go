package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrScheduleUnavailable means the schedule could not be fetched after every attempt.
	ErrScheduleUnavailable = errors.New("schedule service unreachable")
	// ErrInvalidReference means the reference time given on the command line could not be parsed.
	ErrInvalidReference = errors.New("invalid reference time")
)

// ServiceError is an application-level error reported by the scheduling service.
type ServiceError struct {
	Message string
	URL     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("schedule service error: %s", e.Message)
}

// MissingContactError names the person whose phone numbers are not configured.
type MissingContactError struct {
	Person    string
	Direction string // "from" for the outgoing person, "to" for the incoming one
	Field     string
	Err       error
}

func (e *MissingContactError) Error() string {
	return fmt.Sprintf("no %s configured for %s: %v", e.Field, e.Person, e.Err)
}

func (e *MissingContactError) Unwrap() error {
	return e.Err
}

// MissingConfigError names a required configuration value that is absent.
type MissingConfigError struct {
	Section string
	Key     string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing %s value in the [%s] section", e.Key, e.Section)
}

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return ExitServiceError
	}

	return ExitMissingData
}

// ErrJournalDisabled is returned when run history is requested without a journal.
var ErrJournalDisabled = errors.New("run journal is not configured")
