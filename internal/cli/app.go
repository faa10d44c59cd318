// Package cli implements the interactive terminal front end: a small REPL
// offering registration and login over the credential workflow.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/jfmartinez/credvault/internal/config"
	"github.com/jfmartinez/credvault/internal/identity"
	"github.com/jfmartinez/credvault/internal/logging"
	"github.com/jfmartinez/credvault/internal/repositories/identities"
)

// Workflow is the slice of the credential workflow the CLI drives.
type Workflow interface {
	Register(ctx context.Context, in identity.RegisterInput) (*identity.Summary, error)
	Authenticate(ctx context.Context, in identity.LoginInput) (*identity.Summary, error)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	workflow Workflow
	db       *sql.DB
	user     *identity.Summary
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := identities.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err.Error())
		return nil, err
	}

	logger.Debug(ctx, "vault opened", "path", c.DatabasePath)

	repo := identities.NewSQLiteRepository(db)
	workflow := identity.NewService(repo, c.HashTimeout)

	return &App{
		config:   c,
		logger:   logger,
		workflow: workflow,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}
