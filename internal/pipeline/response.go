package pipeline

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the structured outcome of a pipeline call. Status is
// "error" exactly when Error is set; CypherResult and Answer are
// populated only on the full successful path, and preview calls carry
// only Schema and CypherQuery.
type Response struct {
	Status       string  `json:"status"`
	Schema       *string `json:"schema,omitempty"`
	CypherQuery  *string `json:"cypher_query,omitempty"`
	CypherResult *string `json:"cypher_result,omitempty"`
	Answer       *string `json:"answer,omitempty"`
	Error        *string `json:"error,omitempty"`
}

func successResponse() *Response {
	return &Response{Status: StatusSuccess}
}

func errorResponse(partial *Response, err error) *Response {
	msg := err.Error()
	partial.Status = StatusError
	partial.Error = &msg
	return partial
}

func stringPtr(s string) *string {
	return &s
}
