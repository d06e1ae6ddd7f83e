package client

import (
	"net/http"
	"net/url"
	"slices"
)

// RequestOptions are per-call switches of the interceptor pipeline.
type RequestOptions struct {
	// ShowLoading brackets the call with the LoadingIndicator.
	ShowLoading bool
	// ShowError hands BusinessError/NetworkError/Unknown failures to the
	// ErrorReporter.
	ShowError bool
	// SkipInterceptors sends the request as is and returns the raw response.
	SkipInterceptors bool
}

// DefaultOptions matches the behaviour of a plain call: loading shown,
// errors reported, interceptors on.
func DefaultOptions() RequestOptions {
	return RequestOptions{ShowLoading: true, ShowError: true}
}

// RequestDescriptor describes one API call. The pipeline never mutates a
// descriptor handed to it; decoration works on a Clone.
type RequestDescriptor struct {
	Method  string
	URL     string
	Header  http.Header
	Query   url.Values
	Body    any
	Options RequestOptions
}

// RequestOption customises a RequestDescriptor at construction time.
type RequestOption func(*RequestDescriptor)

// NewRequest builds a descriptor with DefaultOptions.
func NewRequest(method, target string, body any, opts ...RequestOption) *RequestDescriptor {
	d := &RequestDescriptor{
		Method:  method,
		URL:     target,
		Header:  http.Header{},
		Query:   url.Values{},
		Body:    body,
		Options: DefaultOptions(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func Get(target string, opts ...RequestOption) *RequestDescriptor {
	return NewRequest(http.MethodGet, target, nil, opts...)
}

func Post(target string, body any, opts ...RequestOption) *RequestDescriptor {
	return NewRequest(http.MethodPost, target, body, opts...)
}

func Put(target string, body any, opts ...RequestOption) *RequestDescriptor {
	return NewRequest(http.MethodPut, target, body, opts...)
}

func Delete(target string, opts ...RequestOption) *RequestDescriptor {
	return NewRequest(http.MethodDelete, target, nil, opts...)
}

// Clone returns a copy whose Header and Query can be changed without
// affecting d. Body is shared.
func (d *RequestDescriptor) Clone() *RequestDescriptor {
	c := *d
	c.Header = d.Header.Clone()
	if c.Header == nil {
		c.Header = http.Header{}
	}
	c.Query = make(url.Values, len(d.Query))
	for k, vs := range d.Query {
		c.Query[k] = slices.Clone(vs)
	}
	return &c
}

// WithQuery merges q into the request query.
func WithQuery(q url.Values) RequestOption {
	return func(d *RequestDescriptor) {
		for k, vs := range q {
			for _, v := range vs {
				d.Query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(d *RequestDescriptor) {
		d.Header.Set(key, value)
	}
}

// WithBody replaces the request body; used for DELETE calls with a payload.
func WithBody(body any) RequestOption {
	return func(d *RequestDescriptor) {
		d.Body = body
	}
}

// WithoutLoading suppresses the loading indicator for the call.
func WithoutLoading() RequestOption {
	return func(d *RequestDescriptor) {
		d.Options.ShowLoading = false
	}
}

// WithoutErrorReport keeps failures away from the ErrorReporter; the
// caller still receives the error.
func WithoutErrorReport() RequestOption {
	return func(d *RequestDescriptor) {
		d.Options.ShowError = false
	}
}

// SkipInterceptors bypasses decoration, classification and side effects.
func SkipInterceptors() RequestOption {
	return func(d *RequestDescriptor) {
		d.Options.SkipInterceptors = true
	}
}
