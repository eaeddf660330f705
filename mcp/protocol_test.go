package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentPartUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType string
		wantText string
		wantRaw  string
	}{
		{
			name:     "text part",
			input:    `{"type":"text","text":"Parsed 12 nodes."}`,
			wantType: "text",
			wantText: "Parsed 12 nodes.",
		},
		{
			name:     "type only",
			input:    `{"type":"image"}`,
			wantType: "image",
		},
		{
			name:    "opaque string kept raw",
			input:   `"just a string"`,
			wantRaw: `"just a string"`,
		},
		{
			name:    "opaque object kept raw",
			input:   `{"uri":"file:///a.py"}`,
			wantRaw: `{"uri":"file:///a.py"}`,
		},
		{
			name:    "opaque number kept raw",
			input:   `42`,
			wantRaw: `42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var part ContentPart
			require.NoError(t, json.Unmarshal([]byte(tt.input), &part))

			assert.Equal(t, tt.wantType, part.Type)
			assert.Equal(t, tt.wantText, part.Text)
			if tt.wantRaw == "" {
				assert.Nil(t, part.Raw)
			} else {
				assert.JSONEq(t, tt.wantRaw, string(part.Raw))
			}
		})
	}
}

func TestContentPartString(t *testing.T) {
	assert.Equal(t, "hello", ContentPart{Type: "text", Text: "hello"}.String())
	assert.Equal(t, "image", ContentPart{Type: "image"}.String())
	assert.Equal(t, `"opaque"`, ContentPart{Raw: json.RawMessage(`"opaque"`)}.String())
}

func TestContentPartRoundTrip(t *testing.T) {
	original := `{"content":[{"type":"text","text":"ok"},"opaque"],"isError":true}`

	var result ToolResult
	require.NoError(t, json.Unmarshal([]byte(original), &result))
	require.Len(t, result.Content, 2)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, original, string(data))
}
