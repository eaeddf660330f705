package jsonrpc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, body string) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestResponseResult(t *testing.T) {
	t.Run("returns result untouched", func(t *testing.T) {
		resp := decodeResponse(t, `{"jsonrpc":"2.0","id":1,"result":{"tools":[]}}`)

		result, err := resp.Result()
		require.NoError(t, err)
		assert.JSONEq(t, `{"tools":[]}`, string(result))
	})

	t.Run("protocol error carries code and message", func(t *testing.T) {
		resp := decodeResponse(t, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"not found"}}`)

		_, err := resp.Result()
		var rpcErr *Error
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, ErrMethodNotFound, rpcErr.Code)
		assert.Equal(t, "not found", rpcErr.Message)
	})

	t.Run("error takes precedence over result", func(t *testing.T) {
		resp := decodeResponse(t, `{"error":{"code":-32603,"message":"boom"},"result":"ignored"}`)

		_, err := resp.Result()
		var rpcErr *Error
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, ErrInternal, rpcErr.Code)
	})

	t.Run("null error falls through to result", func(t *testing.T) {
		resp := decodeResponse(t, `{"error":null,"result":"ok"}`)

		result, err := resp.Result()
		require.NoError(t, err)
		assert.Equal(t, `"ok"`, string(result))
	})

	t.Run("neither error nor result is malformed", func(t *testing.T) {
		resp := decodeResponse(t, `{}`)

		_, err := resp.Result()
		assert.True(t, errors.Is(err, ErrMalformedResponse))
	})

	t.Run("null result still counts as a result", func(t *testing.T) {
		resp := decodeResponse(t, `{"result":null}`)

		result, err := resp.Result()
		require.NoError(t, err)
		assert.Equal(t, "null", string(result))
	})
}

func TestResponseHasError(t *testing.T) {
	assert.True(t, decodeResponse(t, `{"error":null}`).HasError())
	assert.True(t, decodeResponse(t, `{"error":{"code":-32000,"message":"x"}}`).HasError())
	assert.False(t, decodeResponse(t, `{"result":{}}`).HasError())
}

func TestErrorString(t *testing.T) {
	err := &Error{Code: ErrMethodNotFound, Message: "not found"}
	assert.Equal(t, "JSON-RPC error (code -32601): not found", err.Error())
}
