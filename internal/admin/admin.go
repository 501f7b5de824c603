// Package admin implements the operator command line: applying database
// migrations and creating accounts without going through the HTTP API.
//
// Usage:
//
//	planit-admin migrate [-c config.json] [-d dsn]
//	planit-admin create-user [-name NAME] [-email EMAIL] [-c config.json] [-d dsn]
//
// create-user prompts for anything not given on the command line. The
// password is always read from the terminal, twice, without echo.
package admin

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/planit/internal/dbx"
	"github.com/dmitrijs2005/planit/internal/flagx"
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/auth"
	"github.com/dmitrijs2005/planit/internal/server/config"
	"github.com/dmitrijs2005/planit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/planit/internal/server/services"
	"gorm.io/gorm"
)

var ErrUsage = errors.New("usage: planit-admin <migrate|create-user> [flags]")

var errPasswordMismatch = errors.New("passwords do not match")

type App struct {
	in     *bufio.Reader
	out    io.Writer
	logger logging.Logger
	rm     repomanager.RepositoryManager
	open   func(ctx context.Context, dsn string) (*gorm.DB, *sql.DB, error)
}

func NewApp(in io.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
		rm:     repomanager.NewGormRepositoryManager(),
		open: func(ctx context.Context, dsn string) (*gorm.DB, *sql.DB, error) {
			return dbx.Open(ctx, dsn, &gorm.Config{Logger: dbx.NewGormLogger(logger)})
		},
	}
}

// Run executes the command named by args[0]. The remaining args may mix
// command flags with the server's configuration flags.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cfg, err := config.LoadConfig(args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "migrate":
		return a.migrate(ctx, cfg)
	case "create-user":
		return a.createUser(ctx, cfg, args[1:])
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

func (a *App) migrate(ctx context.Context, cfg *config.Config) error {
	_, sqlDB, err := a.open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := a.rm.RunMigrations(ctx, sqlDB); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Migrations applied.")
	return nil
}

func (a *App) createUser(ctx context.Context, cfg *config.Config, args []string) error {
	var name, email string

	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.StringVar(&name, "name", "", "display name")
	fs.StringVar(&email, "email", "", "login email")
	if err := fs.Parse(flagx.FilterArgs(args, flagx.Names(fs))); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if name == "" {
		if name, err = promptLine(a.in, a.out, "Name"); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = promptLine(a.in, a.out, "Email"); err != nil {
			return err
		}
	}

	password, err := promptPassword(a.out, "Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	if password != confirm {
		return errPasswordMismatch
	}

	db, sqlDB, err := a.open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	users := services.NewUserService(db, a.rm, auth.NewPasswordHasher(cfg.BcryptCost), a.logger)
	user, err := users.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created user %d <%s>.\n", user.ID, user.Email)
	return nil
}
