package jsonrpc

import (
	"encoding/json"
	"errors"
)

// ErrMalformedResponse indicates a response carrying neither an error
// object nor a result value.
var ErrMalformedResponse = errors.New("invalid JSON-RPC response: no 'result' field")

// Response is a decoded JSON-RPC response object. Fields are kept raw
// so that presence can be distinguished from a null value and so that
// result payloads pass through untouched.
type Response map[string]json.RawMessage

// HasError reports whether the response carries an "error" key at all,
// regardless of its value. The readiness poller uses this looser check:
// any response without the key counts as a healthy server.
func (r Response) HasError() bool {
	_, ok := r["error"]
	return ok
}

// Err decodes the protocol error, if any. A missing or null error
// field yields nil.
func (r Response) Err() (*Error, error) {
	raw, ok := r["error"]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var rpcErr Error
	if err := json.Unmarshal(raw, &rpcErr); err != nil {
		return nil, err
	}
	return &rpcErr, nil
}

// Result classifies the response and returns the raw result value.
// A non-null error field takes precedence over any result. A response
// with neither field fails with ErrMalformedResponse.
func (r Response) Result() (json.RawMessage, error) {
	rpcErr, err := r.Err()
	if err != nil {
		return nil, err
	}
	if rpcErr != nil {
		return nil, rpcErr
	}
	result, ok := r["result"]
	if !ok {
		return nil, ErrMalformedResponse
	}
	return result, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
