package jsonrpc

// Version is the JSON-RPC protocol version sent with every request
const Version = "2.0"

// Request represents a JSON-RPC request object.
// Once built it is serialized and sent; it is never mutated.
type Request struct {
	JSONRPC string                 `json:"jsonrpc"`
	Method  string                 `json:"method"`
	ID      int                    `json:"id"`
	Params  map[string]interface{} `json:"params"`
}

// NewRequest creates a new Request object. A nil params map is replaced
// with an empty one so the wire body always carries "params": {}.
// The id is caller-assigned; a compliant server echoes it back.
func NewRequest(method string, params map[string]interface{}, id int) Request {
	if params == nil {
		params = map[string]interface{}{}
	}
	return Request{
		JSONRPC: Version,
		Method:  method,
		ID:      id,
		Params:  params,
	}
}
