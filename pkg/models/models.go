/*
Package models defines the wire structures exchanged by the bigcalc HTTP API
and written by the CLI in JSON mode.

Every structure carries both json and msgpack tags so that the server can
answer in either encoding. Integer results always travel as decimal strings:
they routinely exceed the range of JSON numbers that clients can represent.
*/
package models

// EvaluateRequest is the body of POST /evaluate.
type EvaluateRequest struct {
	// Expression is the arithmetic expression to evaluate.
	Expression string `json:"expression" msgpack:"expression"`
}

// EvaluateResponse is the result of one evaluation or operation.
type EvaluateResponse struct {
	Expression string `json:"expression" msgpack:"expression"`
	Result     string `json:"result,omitempty" msgpack:"result,omitempty"`
	Digits     int    `json:"digits" msgpack:"digits"`
	Duration   string `json:"duration,omitempty" msgpack:"duration,omitempty"`
	Error      string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error" msgpack:"error"`
	// Message describes what went wrong.
	Message string `json:"message,omitempty" msgpack:"message,omitempty"`
}

// OperationInfo describes one registered operation.
type OperationInfo struct {
	Name     string `json:"name" msgpack:"name"`
	Symbol   string `json:"symbol" msgpack:"symbol"`
	Endpoint string `json:"endpoint,omitempty" msgpack:"endpoint,omitempty"`
}

// OperationsResponse is the body of GET /operations.
type OperationsResponse struct {
	Operations []OperationInfo `json:"operations" msgpack:"operations"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status" msgpack:"status"`
	Timestamp int64  `json:"timestamp" msgpack:"timestamp"`
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version   string `json:"version" msgpack:"version"`
	Commit    string `json:"commit" msgpack:"commit"`
	BuildDate string `json:"build_date" msgpack:"build_date"`
	GoVersion string `json:"go_version" msgpack:"go_version"`
	OS        string `json:"os" msgpack:"os"`
	Arch      string `json:"arch" msgpack:"arch"`
}
