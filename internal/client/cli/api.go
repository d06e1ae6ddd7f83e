package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
)

// Get calls an arbitrary API path through the full pipeline and prints the
// unwrapped data.
func (a *App) Get(ctx context.Context, path string) error {
	if path == "" {
		fmt.Fprintln(a.out, "Usage: get <path>")
		return nil
	}

	data, err := a.api.Request(ctx, client.Get(path))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, prettyJSON(data))
	return nil
}

// Raw calls path without interceptors and prints status and body as
// received.
func (a *App) Raw(ctx context.Context, path string) error {
	if path == "" {
		fmt.Fprintln(a.out, "Usage: raw <path>")
		return nil
	}

	resp, err := a.api.Raw(ctx, client.Get(path, client.SkipInterceptors()))
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	fmt.Fprintf(a.out, "HTTP %d\n%s\n", resp.StatusCode, prettyJSON(resp.Body))
	return nil
}

// Where prints the current location and the navigation history.
func (a *App) Where(ctx context.Context) error {
	fmt.Fprintln(a.out, "current:", a.router.CurrentPath())
	for _, p := range a.router.History() {
		fmt.Fprintln(a.out, "  ", p)
	}
	return nil
}

// Back returns to the previous location, if there is one.
func (a *App) Back(ctx context.Context) error {
	if !a.router.Back() {
		fmt.Fprintln(a.out, "no previous location")
		return nil
	}
	fmt.Fprintln(a.out, "current:", a.router.CurrentPath())
	return nil
}

func prettyJSON(b []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return string(b)
	}
	return buf.String()
}
