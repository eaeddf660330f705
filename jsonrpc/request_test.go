package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		params   map[string]interface{}
		id       int
		wantWire string
	}{
		{
			name:     "nil params default to empty object",
			method:   "initialize",
			params:   nil,
			id:       1,
			wantWire: `{"jsonrpc":"2.0","method":"initialize","id":1,"params":{}}`,
		},
		{
			name:     "params are echoed exactly",
			method:   "tools/call",
			params:   map[string]interface{}{"name": "analyze"},
			id:       3,
			wantWire: `{"jsonrpc":"2.0","method":"tools/call","id":3,"params":{"name":"analyze"}}`,
		},
		{
			name:     "arbitrary method strings are accepted",
			method:   "not/a/known/method",
			params:   map[string]interface{}{"x": float64(42)},
			id:       7,
			wantWire: `{"jsonrpc":"2.0","method":"not/a/known/method","id":7,"params":{"x":42}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(tt.method, tt.params, tt.id)

			assert.Equal(t, Version, req.JSONRPC)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.id, req.ID)
			if tt.params == nil {
				assert.Empty(t, req.Params)
			} else {
				assert.Equal(t, tt.params, req.Params)
			}

			data, err := json.Marshal(req)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantWire, string(data))
		})
	}
}
