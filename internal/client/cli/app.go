package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/client/client"
	"github.com/dmitrijs2005/gopherblog/internal/client/config"
	"github.com/dmitrijs2005/gopherblog/internal/client/services"
	"github.com/dmitrijs2005/gopherblog/internal/client/store"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	auth    services.AuthService
	blog    services.BlogService
	db      *sql.DB
	session *services.Session
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		config: c,
		auth:   services.NewAuthService(apiClient, db),
		blog:   services.NewBlogService(apiClient),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run restores the previous session, starts the reachability watcher and
// blocks in the REPL until the user leaves or stdin ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.auth.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the blog CLI (type 'help' for commands)")

	if s, err := a.auth.Restore(ctx); err == nil {
		a.session = s
		fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
	} else if !errors.Is(err, services.ErrNotLoggedIn) {
		log.Printf("could not restore session: %v", err)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.Email + " "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// report prints a command failure. A 401 on a gated call means the saved
// token is no longer accepted, so the local session is dropped.
func (a *App) report(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn():
		fmt.Fprintln(a.out, "Session expired, please log in again")
		_ = a.auth.Logout(ctx)
		a.session = nil
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
	}
	return err
}

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Please log in first")
	return false
}
