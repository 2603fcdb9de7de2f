package layerdal

import (
	"github.com/jamesrr39/goutil/errorsx"
)

// ErrorClass partitions layer-build failures. Transport covers network
// failures and non-success responses, Format covers undecodable or
// incomplete documents, Configuration covers requests for which no source
// URL resolves at all.
type ErrorClass int

const (
	ErrorClassUnknown ErrorClass = iota
	ErrorClassTransport
	ErrorClassFormat
	ErrorClassConfiguration
)

var errorClassNames = []string{
	"unknown",
	"transport",
	"format",
	"configuration",
}

func (c ErrorClass) String() string {
	return errorClassNames[c]
}

// ClassifiedError carries an ErrorClass alongside the underlying error.
// It satisfies errorsx.Error so it can flow through the usual error paths.
type ClassifiedError struct {
	Class ErrorClass
	err   errorsx.Error
}

func (e *ClassifiedError) Error() string {
	return e.err.Error()
}

func (e *ClassifiedError) Stack() []byte {
	return e.err.Stack()
}

func NewTransportError(message string, args ...interface{}) *ClassifiedError {
	return &ClassifiedError{ErrorClassTransport, errorsx.Errorf(message, args...)}
}

func NewFormatError(message string, args ...interface{}) *ClassifiedError {
	return &ClassifiedError{ErrorClassFormat, errorsx.Errorf(message, args...)}
}

func NewConfigurationError(message string, args ...interface{}) *ClassifiedError {
	return &ClassifiedError{ErrorClassConfiguration, errorsx.Errorf(message, args...)}
}

// ClassifyError returns the ErrorClass of err, or ErrorClassUnknown for
// errors produced outside this package.
func ClassifyError(err error) ErrorClass {
	classified, ok := err.(*ClassifiedError)
	if !ok {
		return ErrorClassUnknown
	}
	return classified.Class
}
