package api

import (
	"errors"
	"fmt"
)

// GenericProcessMessage is shown when the service fails without a
// usable detail message.
const GenericProcessMessage = "Failed to process email"

// RequestError is a non-2xx answer from the service. Detail carries the
// server-supplied message when the body had one.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// TransportError is a failure before any HTTP status was received:
// DNS, connection refused, or the client timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request did not complete: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorMessage converts a client error into the text shown in the UI
// banner. Server detail is surfaced verbatim; transport failures and
// detail-less rejections get the generic message. The banner does not
// distinguish the two failure classes, only the log does.
func ErrorMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		return reqErr.Detail
	}
	return GenericProcessMessage
}
