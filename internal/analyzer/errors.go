package analyzer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var ErrCompletionService = errors.New("completion service error")

type ErrorKind string

const (
	KindCredential ErrorKind = "invalid_credential"
	KindModel      ErrorKind = "invalid_model"
	KindUnexpected ErrorKind = "unexpected"
)

// CompletionError is a classified failure of the completion service.
type CompletionError struct {
	Kind ErrorKind
	Err  error
}

func (e *CompletionError) Error() string {
	return "completion service: " + e.Message()
}

// Message is the caller-facing description of the failure.
func (e *CompletionError) Message() string {
	switch e.Kind {
	case KindCredential:
		return "Invalid or missing OpenAI API key"
	case KindModel:
		return "Invalid model configuration"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unexpected error"
	}
}

func (e *CompletionError) Unwrap() error { return e.Err }

func (e *CompletionError) Is(target error) bool { return target == ErrCompletionService }

// Classify maps an upstream failure onto a kind by inspecting its message. This
// follows the upstream wording and will drift if the provider rewords its errors.
func Classify(err error) *CompletionError {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce
	}

	msg := strings.ToLower(err.Error())

	var apiErr *openai.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized:
		return &CompletionError{Kind: KindCredential, Err: err}
	case strings.Contains(msg, "api key"):
		return &CompletionError{Kind: KindCredential, Err: err}
	case strings.Contains(msg, "model"):
		return &CompletionError{Kind: KindModel, Err: err}
	default:
		return &CompletionError{Kind: KindUnexpected, Err: err}
	}
}

// retryable reports whether a second attempt could plausibly succeed.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return transientStatus(reqErr.HTTPStatusCode)
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
