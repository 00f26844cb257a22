package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code identifies which stage contract a job violated or which stage failed.
type Code string

const (
	CodeInvalidReference    Code = "invalid_reference"
	CodeMissingDependency   Code = "missing_dependency"
	CodeExtractionFailed    Code = "extraction_failed"
	CodeUploadFailed        Code = "upload_failed"
	CodeTranscriptionFailed Code = "transcription_failed"
	CodeGenerationFailed    Code = "generation_failed"
	CodeMalformedResponse   Code = "malformed_response"
)

// Error is the typed failure every stage raises. The HTTP boundary maps the
// code to a status class through classByCode; nothing inspects messages.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// Class is the coarse failure category exposed to clients.
type Class string

const (
	ClassClient  Class = "client"
	ClassServer  Class = "server"
	ClassTimeout Class = "timeout"
)

type mapping struct {
	status int
	class  Class
}

var classByCode = map[Code]mapping{
	CodeInvalidReference:    {http.StatusBadRequest, ClassClient},
	CodeMissingDependency:   {http.StatusInternalServerError, ClassServer},
	CodeExtractionFailed:    {http.StatusInternalServerError, ClassServer},
	CodeUploadFailed:        {http.StatusBadGateway, ClassServer},
	CodeTranscriptionFailed: {http.StatusBadGateway, ClassServer},
	CodeGenerationFailed:    {http.StatusBadGateway, ClassServer},
	CodeMalformedResponse:   {http.StatusBadGateway, ClassServer},
}

// Classify resolves a pipeline failure to an HTTP status and failure class.
// Deadline expiry anywhere in the chain wins over the stage code, so a stage
// that timed out reports 504 rather than a generic upstream failure.
func Classify(err error) (int, Class) {
	if isTimeout(err) {
		return http.StatusGatewayTimeout, ClassTimeout
	}
	var perr *Error
	if errors.As(err, &perr) {
		if m, ok := classByCode[perr.Code]; ok {
			return m.status, m.class
		}
	}
	return http.StatusInternalServerError, ClassServer
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if s, ok := status.FromError(e); ok && s.Code() == codes.DeadlineExceeded {
			return true
		}
	}
	return false
}
