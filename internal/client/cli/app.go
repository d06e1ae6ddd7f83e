package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/client/config"
	"github.com/dmitrijs2005/adminapi/internal/client/router"
	"github.com/dmitrijs2005/adminapi/internal/client/services"
	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/filex"
	"github.com/dmitrijs2005/adminapi/internal/logging"
)

// App holds everything the REPL commands need. It is built once at start-up.
type App struct {
	config *config.Config
	db     *sql.DB
	store  session.Store
	router *router.Router
	api    *client.Client

	authService services.AuthService
	userService services.UserService

	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

// NewApp opens the state database, restores the persisted session and
// wires the API client around it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.StatePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StatePath, "error", err)
		return nil, err
	}

	opts := []session.PersistentOption{session.WithLogger(log)}
	if c.Passphrase != "" {
		opts = append(opts, session.WithPassphrase([]byte(c.Passphrase)))
	}
	store, err := session.NewPersistentStore(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	a := newApp(client.NewHTTPTransport(c.BaseURL, c.Timeout), store, os.Stdin, os.Stdout, log)
	a.config = c
	a.db = db
	return a, nil
}

// newApp wires an App over an arbitrary transport and store.
func newApp(t client.Transport, store session.Store, in io.Reader, out io.Writer, log logging.Logger) *App {
	a := &App{
		store:  store,
		router: router.New("", 0),
		reader: bufio.NewReader(in),
		out:    out,
		log:    log,
	}

	a.api = client.NewClient(t, store, a.router,
		client.WithLoadingIndicator(&progress{out: out}),
		client.WithErrorReporter(&printReporter{out: out}),
		client.WithLogger(log),
	)
	a.authService = services.NewAuthService(a.api, store)
	a.userService = services.NewUserService(a.api)

	a.router.OnChange(a.onNavigate)
	return a
}

// Run starts the REPL and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close detaches the client and closes the state database.
func (a *App) Close() {
	a.api.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "closing state database", "error", err)
		}
	}
}

// onNavigate tells the user why the pipeline moved them.
func (a *App) onNavigate(from, to string) {
	if isLoginLocation(to) {
		fmt.Fprintln(a.out, "Please log in.")
		return
	}
	switch to {
	case common.ForbiddenRoute:
		fmt.Fprintln(a.out, "Access denied.")
	case common.NotFoundRoute:
		fmt.Fprintln(a.out, "Not found.")
	case common.ServerErrorRoute:
		fmt.Fprintln(a.out, "Server error, try again later.")
	}
}

func isLoginLocation(loc string) bool {
	path, _, _ := strings.Cut(loc, "?")
	return path == common.LoginRoute
}

func (a *App) isLoggedIn() bool {
	return a.api.Session().State() == client.Authenticated
}

// progress prints a marker when a call starts; nested calls share one
// marker.
type progress struct {
	out    io.Writer
	active atomic.Int32
}

func (p *progress) Start() {
	if p.active.Add(1) == 1 {
		fmt.Fprintln(p.out, "...")
	}
}

func (p *progress) Stop() {
	p.active.Add(-1)
}

// printReporter shows failures the pipeline leaves to the caller.
type printReporter struct {
	out io.Writer
}

func (r *printReporter) Report(ctx context.Context, err error) {
	fmt.Fprintln(r.out, "error:", err)
}
