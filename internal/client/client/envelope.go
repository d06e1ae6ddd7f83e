package client

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// BusinessSuccessCode is the envelope code of a successful call.
const BusinessSuccessCode = 200

// Envelope is the wire shape of every API response body.
type Envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message"`
}

// Response is what the transport returns for a completed exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// decodeEnvelope parses body and reports whether it looks like an Envelope
// (a JSON object with a numeric code).
func decodeEnvelope(body []byte) (Envelope, bool) {
	var probe struct {
		Code    *int            `json:"code"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Code == nil {
		return Envelope{}, false
	}
	return Envelope{Code: *probe.Code, Data: probe.Data, Message: probe.Message}, true
}

// hasData reports whether the data member carries a value.
func (e Envelope) hasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Page is a paginated list payload.
type Page[T any] struct {
	List     []T `json:"list"`
	Total    int `json:"total"`
	PageNum  int `json:"pageNum"`
	PageSize int `json:"pageSize"`
}

// PageQuery selects a page of a list endpoint.
type PageQuery struct {
	PageNum  int
	PageSize int
}
