package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope codes written by the server.
const (
	codeOK       = 200
	codeBadInput = 400
	codeFailed   = 500
)

type envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type page[T any] struct {
	List     []T `json:"list"`
	Total    int `json:"total"`
	PageNum  int `json:"pageNum"`
	PageSize int `json:"pageSize"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Code: codeOK, Data: data, Message: "success"})
}

// writeBusinessError reports a rejected request inside a 200 response.
func writeBusinessError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, http.StatusOK, envelope{Code: code, Message: message})
}

// writeStatus answers with a bare HTTP status and an envelope carrying the
// same code.
func writeStatus(w http.ResponseWriter, status int) {
	writeJSON(w, status, envelope{Code: status, Message: http.StatusText(status)})
}
