package gsheets

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a load failure.
type Kind int

const (
	Unknown Kind = iota
	ConfigNotFound
	ConfigParseError
	AuthenticationError
	WorksheetLoadError
)

var (
	ErrConfigNotFound = &Error{Kind: ConfigNotFound}
	ErrConfigParse    = &Error{Kind: ConfigParseError}
	ErrAuthentication = &Error{Kind: AuthenticationError}
	ErrWorksheetLoad  = &Error{Kind: WorksheetLoadError}
)

var kinds = map[Kind]string{
	Unknown:             "unknown error",
	ConfigNotFound:      "configuration file not found",
	ConfigParseError:    "invalid configuration",
	AuthenticationError: "Google Sheets API initialisation failed",
	WorksheetLoadError:  "error loading worksheet",
}

func (k Kind) String() string {
	if s, ok := kinds[k]; ok {
		return s
	}

	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error is the error returned for the recognised failure categories. Msg describes the
// failure and Err, if not nil, is the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Errorf returns an Error of the given kind, with the message formatted as for fmt.Sprintf.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap returns an Error of the given kind wrapping err.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%v (%v)", e.Msg, e.Err)

	case e.Msg != "":
		return e.Msg

	case e.Err != nil:
		return fmt.Sprintf("%v (%v)", e.Kind, e.Err)

	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any Error of the same kind, so that errors.Is(err, ErrConfigNotFound) holds for
// every ConfigNotFound error regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}

	return false
}

// ExitCode is the process exit status for the error kind.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case ConfigNotFound:
		return 2
	case ConfigParseError:
		return 3
	case AuthenticationError:
		return 4
	case WorksheetLoadError:
		return 5
	default:
		return 1
	}
}

// KindOf returns the Kind of the first Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unknown
}
