package client

import (
	"context"
	"sync"
)

/*************
 * Fakes
 *************/

// fakeTransport records the last request and replies with a preset
// response or error.
type fakeTransport struct {
	mu    sync.Mutex
	calls []*RequestDescriptor

	resp *Response
	err  error
}

func (f *fakeTransport) Send(ctx context.Context, req *RequestDescriptor) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func (f *fakeTransport) last() *RequestDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func jsonResponse(status int, body string) *Response {
	return &Response{StatusCode: status, Body: []byte(body)}
}

// fakeNavigator tracks navigation like a browser history.
type fakeNavigator struct {
	mu      sync.Mutex
	current string
	visited []string
}

func (n *fakeNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visited = append(n.visited, path)
	n.current = path
}

func (n *fakeNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *fakeNavigator) history() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visited...)
}

type fakeLoading struct {
	started, stopped int
}

func (l *fakeLoading) Start() { l.started++ }
func (l *fakeLoading) Stop()  { l.stopped++ }

type fakeReporter struct {
	reported []error
}

func (r *fakeReporter) Report(ctx context.Context, err error) {
	r.reported = append(r.reported, err)
}
