package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "InvalidInput"
	KindUnsupportedPlatform ErrorKind = "UnsupportedPlatform"
	KindUpstream            ErrorKind = "UpstreamError"
)

// Error is a classified lookup failure. Status is the upstream HTTP status
// for KindUpstream, or 0 when the upstream never answered.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func UnsupportedPlatform(platform string) *Error {
	return &Error{Kind: KindUnsupportedPlatform, Message: fmt.Sprintf("unsupported platform %q", platform)}
}

func Upstream(status int, err error) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: "upstream API error", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UpstreamStatus returns the upstream status carried by err, or 0.
func UpstreamStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindUpstream {
		return e.Status
	}
	return 0
}
