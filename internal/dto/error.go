package dto

// ErrorResponse is the body of every failed request. Kind is the stable name of the violated
// ledger rule and is empty for infrastructure failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
