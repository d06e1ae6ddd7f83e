package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")

	tests := []struct {
		name     string
		ex       Exchange
		wantKind OutcomeKind
		wantData string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "success with data",
			ex:       Exchange{Response: jsonResponse(200, `{"code":200,"data":{"id":7,"name":"x"},"message":"ok"}`)},
			wantKind: OutcomeSuccess,
			wantData: `{"id":7,"name":"x"}`,
		},
		{
			name:     "success without data yields envelope",
			ex:       Exchange{Response: jsonResponse(200, `{"code":200,"message":"ok"}`)},
			wantKind: OutcomeSuccess,
			wantData: `{"code":200,"message":"ok"}`,
		},
		{
			name:     "success with null data yields envelope",
			ex:       Exchange{Response: jsonResponse(200, `{"code":200,"data":null}`)},
			wantKind: OutcomeSuccess,
			wantData: `{"code":200,"data":null}`,
		},
		{
			name:     "success on 201",
			ex:       Exchange{Response: jsonResponse(201, `{"code":200,"data":1}`)},
			wantKind: OutcomeSuccess,
			wantData: `1`,
		},
		{
			name:     "business error on 2xx",
			ex:       Exchange{Response: jsonResponse(200, `{"code":500,"message":"Duplicate username"}`)},
			wantKind: OutcomeBusinessError,
			wantCode: 500,
			wantMsg:  "Duplicate username",
		},
		{
			name:     "envelope 401 on 2xx",
			ex:       Exchange{Response: jsonResponse(200, `{"code":401,"message":"token expired"}`)},
			wantKind: OutcomeUnauthorized,
			wantCode: 401,
			wantMsg:  "token expired",
		},
		{name: "status 401", ex: Exchange{Response: jsonResponse(401, ``)}, wantKind: OutcomeUnauthorized},
		{name: "status 401 ignores body", ex: Exchange{Response: jsonResponse(401, `{"code":200,"data":1}`)}, wantKind: OutcomeUnauthorized},
		{name: "status 403", ex: Exchange{Response: jsonResponse(403, `{"code":403}`)}, wantKind: OutcomeForbidden},
		{name: "status 404", ex: Exchange{Response: jsonResponse(404, `<html>`)}, wantKind: OutcomeNotFound},
		{name: "status 500", ex: Exchange{Response: jsonResponse(500, ``)}, wantKind: OutcomeServerError},
		{name: "transport error", ex: Exchange{Err: transportErr}, wantKind: OutcomeNetworkError},
		{name: "no response", ex: Exchange{}, wantKind: OutcomeNetworkError},
		{name: "not json", ex: Exchange{Response: jsonResponse(200, `hello`)}, wantKind: OutcomeUnknown},
		{name: "no code field", ex: Exchange{Response: jsonResponse(200, `{"data":1}`)}, wantKind: OutcomeUnknown},
		{name: "json array", ex: Exchange{Response: jsonResponse(200, `[1,2]`)}, wantKind: OutcomeUnknown},
		{name: "empty body", ex: Exchange{Response: jsonResponse(200, ``)}, wantKind: OutcomeUnknown},
		{name: "502 without envelope", ex: Exchange{Response: jsonResponse(502, `Bad Gateway`)}, wantKind: OutcomeUnknown},
		{name: "503 with success code", ex: Exchange{Response: jsonResponse(503, `{"code":200}`)}, wantKind: OutcomeUnknown},
		{
			name:     "400 with business envelope",
			ex:       Exchange{Response: jsonResponse(400, `{"code":1001,"message":"bad input"}`)},
			wantKind: OutcomeBusinessError,
			wantCode: 1001,
			wantMsg:  "bad input",
		},
	}

	c := NewResponseClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.ex)

			require.Equal(t, tt.wantKind, got.Kind, got.Kind.String())
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, string(got.Data))
			}
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestClassify_UnknownKeepsRaw(t *testing.T) {
	got := NewResponseClassifier().Classify(Exchange{Response: jsonResponse(200, `not json`)})

	require.Equal(t, OutcomeUnknown, got.Kind)
	assert.Equal(t, []byte("not json"), got.Raw)
	assert.Equal(t, 200, got.Status)
}

func TestClassify_NetworkKeepsCause(t *testing.T) {
	cause := errors.New("i/o timeout")
	got := NewResponseClassifier().Classify(Exchange{Err: cause, Response: jsonResponse(200, `{"code":200}`)})

	require.Equal(t, OutcomeNetworkError, got.Kind)
	assert.ErrorIs(t, got.Err(), cause)
	assert.ErrorIs(t, got.Err(), ErrNetwork)
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "business_error", OutcomeBusinessError.String())
	assert.Equal(t, "network_error", OutcomeNetworkError.String())
	assert.Equal(t, "outcome(42)", OutcomeKind(42).String())
}
