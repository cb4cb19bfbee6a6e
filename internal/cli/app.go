package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/armonia-app/armonia-core/internal/appstate"
	"github.com/armonia-app/armonia-core/internal/session"
	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"github.com/armonia-app/armonia-core/pkg/logger"
)

// App is the interactive terminal frontend. It drives the session manager
// for account operations and the app state store for wellness data.
type App struct {
	sessions *session.Manager
	store    *appstate.Store
	logg     *logger.Logger
	reader   *bufio.Reader
	out      io.Writer
}

type AppParams struct {
	Sessions *session.Manager
	Store    *appstate.Store
	Logger   *logger.Logger
	Input    io.Reader
	Output   io.Writer
}

func NewApp(params AppParams) (*App, error) {
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "app state store required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	if params.Input == nil {
		params.Input = os.Stdin
	}
	if params.Output == nil {
		params.Output = os.Stdout
	}
	return &App{
		sessions: params.Sessions,
		store:    params.Store,
		logg:     params.Logger,
		reader:   bufio.NewReader(params.Input),
		out:      params.Output,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Snapshot().User != nil
}

// status renders the prompt decoration: the signed-in name plus a pending
// error message, if one has not auto-cleared yet.
func (a *App) status() string {
	snapshot := a.sessions.Snapshot()
	s := ""
	if snapshot.User != nil {
		s = snapshot.User.Name
	}
	if snapshot.Err != "" {
		if s != "" {
			s += " "
		}
		s += "! " + snapshot.Err
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

func (a *App) Run(ctx context.Context) {
	// The loop and the prompt helpers share one buffered reader so input
	// consumed by a command prompt is never swallowed by the loop.
	runREPL(ctx, a, a.status, a.reader)
}
