// Package weberr decorates errors with what the client should see, so the
// code that detects a failure decides its response and the errors
// middleware only renders it.
package weberr

import "errors"

type Opt func(error) error

func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

type responseError struct {
	error
	body   any
	status int
}

func (e *responseError) Unwrap() error { return e.error }

func WithResponse(body any, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// Response returns the outermost response attached to err.
func Response(err error) (body any, status int, ok bool) {
	var re *responseError
	if errors.As(err, &re) {
		return re.body, re.status, true
	}
	return nil, 0, false
}

// Status is the status Response would give, or 0 without one.
func Status(err error) int {
	_, status, _ := Response(err)
	return status
}

type fieldsError struct {
	error
	fields map[string]any
}

func (e *fieldsError) Unwrap() error { return e.error }

func WithFields(fields map[string]any) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

// Fields merges the log fields attached anywhere in the chain of err. When
// a key is set twice the outer value wins.
func Fields(err error) (map[string]any, bool) {
	var merged map[string]any
	for err != nil {
		if fe, ok := err.(*fieldsError); ok {
			if merged == nil {
				merged = make(map[string]any, len(fe.fields))
			}
			for k, v := range fe.fields {
				if _, set := merged[k]; !set {
					merged[k] = v
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return merged, merged != nil
}
