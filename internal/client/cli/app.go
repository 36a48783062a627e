package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/client"
	"github.com/dmitrijs2005/foodlink/internal/client/config"
	"github.com/dmitrijs2005/foodlink/internal/client/repositories"
	"github.com/dmitrijs2005/foodlink/internal/client/services"
	"github.com/dmitrijs2005/foodlink/internal/client/session"
	"github.com/dmitrijs2005/foodlink/internal/client/tokenstore"
	"github.com/dmitrijs2005/foodlink/internal/logging"
)

// sessionManager is the part of session.Manager the commands use.
type sessionManager interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, username string, password []byte) session.Result
	Register(ctx context.Context, in session.RegisterInput) session.Result
	Logout(ctx context.Context) error
	Identity() (claims.Identity, bool)
	RequireRole(roles ...claims.Role) (claims.Identity, error)
	IsAuthenticated() bool
}

type App struct {
	config    *config.Config
	db        *sql.DB
	session   sessionManager
	donations services.DonationService
	requests  services.RequestService
	stats     services.StatsService
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := repositories.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	tokens := tokenstore.NewSQLiteStore(db)

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, tokens, client.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, apiClient, tokens, log)
	a.db = db
	return a, nil
}

// newApp wires the session and API services over apiClient. Cached query
// results never outlive the session that fetched them.
func newApp(c *config.Config, apiClient client.Client, tokens tokenstore.Store, log logging.Logger) *App {
	mgr := session.NewManager(apiClient, tokens, log)
	svc := services.New(apiClient)
	mgr.OnSessionEnd(func(context.Context) { svc.Cache.Clear() })

	return &App{
		config:    c,
		session:   mgr,
		donations: svc.Donations,
		requests:  svc.Requests,
		stats:     svc.Stats,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
}

// Run restores the previous session and blocks in the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.Initialize(ctx); err != nil {
		a.log.Error(ctx, "session restore failed", "error", err)
	}

	printlnFn("Welcome to FoodLink (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	id, ok := a.session.Identity()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", id.Username, id.Role)
}

// commandContext bounds a single command by the configured request timeout.
func (a *App) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// failed prints the user-facing message for err, preferring what the server
// said over fallback.
func (a *App) failed(ctx context.Context, err error, fallback string) error {
	a.log.Debug(ctx, "command failed", "error", err)
	if isSessionExpired(err) {
		a.println("Session expired. Please log in again.")
		return err
	}
	a.println(client.Message(err, fallback))
	return err
}

func isSessionExpired(err error) bool {
	return err != nil && errors.Is(err, client.ErrRefreshFailed)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
