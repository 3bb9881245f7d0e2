package dto

// SymbolJobResult is the per-symbol outcome of a background job.
type SymbolJobResult struct {
	Symbol    string `json:"symbol"`
	IsSuccess bool   `json:"is_success"`
	Source    string `json:"source,omitempty"`
	Error     string `json:"error,omitempty"`
}
