// Package errors provides custom error types for the transcript and reply sources.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrReplyPending    = errors.New("a reply is already pending")
	ErrNoPendingReply  = errors.New("no reply is pending")
	ErrNothingToRetry  = errors.New("nothing to retry")
	ErrNoReplies       = errors.New("reply set is empty")
	ErrReplySource     = errors.New("reply source failed")
	ErrInvalidSettings = errors.New("invalid setting")
)

// ReplyErrorKind classifies a reply source failure
type ReplyErrorKind int

const (
	KindUnknown ReplyErrorKind = iota
	KindTimeout
	KindTransport
	KindCanceled
)

// String returns the name of the kind
func (k ReplyErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// ReplySourceError represents a failure to produce an assistant reply
type ReplySourceError struct {
	Kind    ReplyErrorKind
	Message string
	Err     error
}

func (e *ReplySourceError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		return fmt.Sprintf("reply source %s", e.Kind)
	}
	return fmt.Sprintf("reply source %s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause
func (e *ReplySourceError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *ReplySourceError) Is(target error) bool {
	if target == ErrReplySource {
		return true
	}
	t, ok := target.(*ReplySourceError)
	if !ok {
		return false
	}
	// A zero-kind target matches any ReplySourceError
	return t.Kind == KindUnknown || t.Kind == e.Kind
}

// NewReplySourceError creates a new ReplySourceError
func NewReplySourceError(kind ReplyErrorKind, message string, cause error) *ReplySourceError {
	return &ReplySourceError{
		Kind:    kind,
		Message: message,
		Err:     cause,
	}
}

// NewTimeoutError creates a ReplySourceError of kind timeout
func NewTimeoutError(message string) *ReplySourceError {
	return NewReplySourceError(KindTimeout, message, nil)
}

// NewTransportError creates a ReplySourceError of kind transport
func NewTransportError(message string, cause error) *ReplySourceError {
	return NewReplySourceError(KindTransport, message, cause)
}

// NewCanceledError creates a ReplySourceError of kind canceled
func NewCanceledError(cause error) *ReplySourceError {
	return NewReplySourceError(KindCanceled, "", cause)
}

// SettingError reports a bad configuration key or value
type SettingError struct {
	Key    string
	Value  string
	Reason string
}

func (e *SettingError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid setting %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("invalid setting %q=%q: %s", e.Key, e.Value, e.Reason)
}

// Is allows comparison with sentinel errors
func (e *SettingError) Is(target error) bool {
	if target == ErrInvalidSettings {
		return true
	}
	_, ok := target.(*SettingError)
	return ok
}

// NewSettingError creates a new SettingError
func NewSettingError(key, value, reason string) *SettingError {
	return &SettingError{Key: key, Value: value, Reason: reason}
}

// Helper functions for error type checking

// IsReplySourceError checks if the error came from a reply source
func IsReplySourceError(err error) bool {
	return errors.Is(err, ErrReplySource)
}

// IsTimeoutError checks if the error is a reply timeout
func IsTimeoutError(err error) bool {
	return GetReplyErrorKind(err) == KindTimeout
}

// IsTransportError checks if the error is a reply transport failure
func IsTransportError(err error) bool {
	return GetReplyErrorKind(err) == KindTransport
}

// IsCanceledError checks if the reply was abandoned because its session ended
func IsCanceledError(err error) bool {
	return GetReplyErrorKind(err) == KindCanceled
}

// IsSettingError checks if the error is an invalid configuration setting
func IsSettingError(err error) bool {
	return errors.Is(err, ErrInvalidSettings)
}

// IsRejection checks if the error is one of the silent input rejections
func IsRejection(err error) bool {
	return errors.Is(err, ErrEmptyMessage) || errors.Is(err, ErrReplyPending)
}

// GetReplyErrorKind extracts the kind from a ReplySourceError
func GetReplyErrorKind(err error) ReplyErrorKind {
	var rse *ReplySourceError
	if errors.As(err, &rse) {
		return rse.Kind
	}
	return KindUnknown
}
