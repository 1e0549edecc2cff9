package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

func handlerWithErrorHandler[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

func opStatus(code int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.DefaultStatus = code }
}

func opDoc(id, summary string, tags ...string) func(*huma.Operation) {
	return func(o *huma.Operation) { o.OperationID, o.Summary, o.Tags = id, summary, tags }
}

// opSkipValidateBody leaves body checks to the operation handler.
func opSkipValidateBody(o *huma.Operation) { o.SkipValidateBody = true }

// ErrorModel is the body of every error response.
type ErrorModel struct {
	status int
	errs   []error

	Message string `json:"message" example:"Contact not found" doc:"Human readable description of the error"`
}

func (e *ErrorModel) Error() string { return e.Message }

func (e *ErrorModel) GetStatus() int { return e.status }

// Unwrap exposes the causes to logging only, they are never serialized.
func (e *ErrorModel) Unwrap() []error { return e.errs }

// NewError replaces [huma.NewError] so that errors are rendered as [ErrorModel].
func NewError(status int, msg string, errs ...error) huma.StatusError {
	return &ErrorModel{status: status, errs: errs, Message: msg}
}

func init() {
	huma.NewError = NewError
}
