package http

import (
	"errors"
	"fmt"
)

const maxErrorBody = 5000

// HTTPError reports a response with a status of 300 or more
type HTTPError struct {
	Response Response
}

// Error includes the status and the start of the body
func (e *HTTPError) Error() string {
	body := e.Response.Body
	if r := []rune(body); len(r) > maxErrorBody {
		body = string(r[:maxErrorBody])
	}
	return fmt.Sprintf("Received an HTTP response with the bad status code of %d.\n~~ truncated response body ~~\n%s",
		e.Response.StatusCode, body)
}

// AsHTTPError unwraps err into an *HTTPError
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// CheckStatus returns resp unchanged or an *HTTPError when the status is 300 or more
func CheckStatus(resp Response) (Response, error) {
	if resp.StatusCode >= 300 {
		return Response{}, &HTTPError{Response: resp}
	}
	return resp, nil
}
