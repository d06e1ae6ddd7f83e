package client

import (
	"net/http"
)

// Exchange is one request/response round trip as seen by the classifier.
// Err is set when the transport never produced a response.
type Exchange struct {
	Response *Response
	Err      error
}

// ResponseClassifier maps an Exchange to exactly one Outcome.
type ResponseClassifier struct{}

func NewResponseClassifier() *ResponseClassifier {
	return &ResponseClassifier{}
}

// Classify applies, in order: transport failure, transport-level auth and
// error statuses, then the envelope code. Transport status decides before
// the body is looked at; a 2xx status is required but not sufficient for
// Success.
func (c *ResponseClassifier) Classify(ex Exchange) Outcome {
	if ex.Err != nil || ex.Response == nil {
		return Outcome{Kind: OutcomeNetworkError, Cause: ex.Err}
	}

	resp := ex.Response
	status := resp.StatusCode

	switch status {
	case http.StatusUnauthorized:
		return Outcome{Kind: OutcomeUnauthorized, Status: status}
	case http.StatusForbidden:
		return Outcome{Kind: OutcomeForbidden, Status: status}
	case http.StatusNotFound:
		return Outcome{Kind: OutcomeNotFound, Status: status}
	case http.StatusInternalServerError:
		return Outcome{Kind: OutcomeServerError, Status: status}
	}

	env, ok := decodeEnvelope(resp.Body)
	if !ok {
		return Outcome{Kind: OutcomeUnknown, Status: status, Raw: resp.Body}
	}

	switch env.Code {
	case BusinessSuccessCode:
		if !is2xx(status) {
			return Outcome{Kind: OutcomeUnknown, Status: status, Raw: resp.Body}
		}
		if env.hasData() {
			return Outcome{Kind: OutcomeSuccess, Status: status, Data: env.Data}
		}
		// endpoints without a data member yield the whole envelope
		return Outcome{Kind: OutcomeSuccess, Status: status, Data: resp.Body}
	case http.StatusUnauthorized:
		return Outcome{Kind: OutcomeUnauthorized, Status: status, Code: env.Code, Message: env.Message}
	default:
		return Outcome{Kind: OutcomeBusinessError, Status: status, Code: env.Code, Message: env.Message}
	}
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
