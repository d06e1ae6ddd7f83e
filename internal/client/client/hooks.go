package client

import "context"

// LoadingIndicator is driven around calls made with ShowLoading.
type LoadingIndicator interface {
	Start()
	Stop()
}

// ErrorReporter displays failures the pipeline leaves to the caller
// (business, network and unrecognized-response errors) for calls made with
// ShowError. Unauthorized and the error-page outcomes are handled by
// navigation instead.
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}

type nopLoading struct{}

func (nopLoading) Start() {}
func (nopLoading) Stop()  {}

type nopReporter struct{}

func (nopReporter) Report(context.Context, error) {}
