package client

import (
	"encoding/json"
	"fmt"
)

// OutcomeKind tags the result of one exchange.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeBusinessError
	OutcomeUnauthorized
	OutcomeForbidden
	OutcomeNotFound
	OutcomeServerError
	OutcomeNetworkError
	OutcomeUnknown
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeBusinessError:
		return "business_error"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeServerError:
		return "server_error"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the classified result of an exchange. Which fields are set
// depends on Kind:
//
//   - Success: Data
//   - BusinessError: Code, Message
//   - Unauthorized: Code and Message when it came from the envelope
//   - NetworkError: Cause
//   - Unknown: Raw
//
// Status is set whenever a response was received.
type Outcome struct {
	Kind    OutcomeKind
	Status  int
	Data    json.RawMessage
	Code    int
	Message string
	Raw     []byte
	Cause   error
}

// Err converts a failed outcome into the *Error returned to callers.
// It returns nil for Success.
func (o Outcome) Err() error {
	e := &Error{Status: o.Status, Code: o.Code, Message: o.Message, err: o.Cause}
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeBusinessError:
		e.Kind = ErrBusiness
	case OutcomeUnauthorized:
		e.Kind = ErrUnauthorized
		if e.Message == "" {
			e.Message = "session expired, please sign in again"
		}
	case OutcomeForbidden:
		e.Kind = ErrForbidden
	case OutcomeNotFound:
		e.Kind = ErrNotFound
	case OutcomeServerError:
		e.Kind = ErrServer
	case OutcomeNetworkError:
		e.Kind = ErrNetwork
	default:
		e.Kind = ErrUnknown
		e.Raw = o.Raw
	}
	return e
}
