package client

import (
	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/google/uuid"
)

// TokenStore is the part of session.Store the pipeline depends on.
type TokenStore interface {
	Get() (session.Credential, bool)
	Clear()
	Subscribe(fn session.Listener) (unsubscribe func())
}

// RequestDecorator attaches the bearer credential to outgoing requests.
type RequestDecorator struct {
	store     TokenStore
	endpoints *EndpointClassifier
	newID     func() string
}

func NewRequestDecorator(store TokenStore, endpoints *EndpointClassifier) *RequestDecorator {
	if endpoints == nil {
		endpoints = NewEndpointClassifier()
	}
	return &RequestDecorator{store: store, endpoints: endpoints, newID: uuid.NewString}
}

// Decorate returns a copy of req ready for the transport. The store is read
// on every call so a retried request picks up a refreshed token.
//
// Exempt targets never carry an Authorization header, even one set by the
// caller. Other targets get exactly one bearer header when a credential is
// present; otherwise their headers pass through untouched.
func (d *RequestDecorator) Decorate(req *RequestDescriptor) *RequestDescriptor {
	out := req.Clone()

	if d.endpoints.IsExempt(out.URL) {
		out.Header.Del(common.AuthorizationHeaderName)
	} else if c, ok := d.store.Get(); ok && c.AccessToken != "" {
		out.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.AccessToken)
	}

	if out.Header.Get(common.RequestIDHeaderName) == "" {
		out.Header.Set(common.RequestIDHeaderName, d.newID())
	}
	return out
}
