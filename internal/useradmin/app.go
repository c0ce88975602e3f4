// Package useradmin implements the administrative CLI for the user store.
// It talks to the store directly, which is also the only place the store's
// delete capability is exposed; the web app never deletes accounts.
package useradmin

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/accountdesk/internal/server/config"
	"github.com/dmitrijs2005/accountdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/accountdesk/internal/server/services"
)

// App is the useradmin command. Out is where human-readable output goes.
type App struct {
	Out io.Writer
}

// Run parses args (excluding the program name) and executes one command:
//
//	-list                      print every user record
//	-create -email E -name N   create a user; the password is prompted
//	-delete -email E           delete a user by email
//
// Store selection mirrors the server flags: -b backend, -d DSN, -f file
// path. Defaults come from config.LoadDefaults, so running next to the
// server's data directory needs no extra flags.
func (a *App) Run(ctx context.Context, args []string) error {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("useradmin", flag.ContinueOnError)
	fs.SetOutput(a.Out)

	list := fs.Bool("list", false, "list all users")
	create := fs.Bool("create", false, "create a user")
	del := fs.Bool("delete", false, "delete a user")
	email := fs.String("email", "", "user email")
	name := fs.String("name", "", "user display name")

	fs.StringVar(&cfg.StoreBackend, "b", cfg.StoreBackend, "store backend (file or postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.UserFilePath, "f", "data/users.json", "user document path (file backend)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store init error: %w", err)
	}
	defer func() { _ = repos.Close() }()

	switch {
	case *list:
		return a.listUsers(ctx, repos)
	case *create:
		return a.createUser(ctx, repos, cfg, *email, *name)
	case *del:
		return a.deleteUser(ctx, repos, *email)
	default:
		fs.Usage()
		return fmt.Errorf("one of -list, -create or -delete is required")
	}
}

func (a *App) listUsers(ctx context.Context, repos repomanager.RepositoryManager) error {
	all, err := repos.Users().GetAll(ctx)
	if err != nil {
		return err
	}

	for _, u := range all {
		pending := ""
		if u.HasPendingReset() {
			pending = " [reset pending]"
		}
		fmt.Fprintf(a.Out, "%s\t%s\t%s%s\n", u.ID, u.Email, u.DisplayName, pending)
	}
	fmt.Fprintf(a.Out, "%d user(s)\n", len(all))

	return nil
}

func (a *App) createUser(ctx context.Context, repos repomanager.RepositoryManager, cfg *config.Config, email, name string) error {
	if email == "" {
		return fmt.Errorf("-email is required")
	}

	password, err := getPassword(a.Out)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	accounts := services.NewAccountService(repos.Users(), cfg)
	user, err := accounts.Register(ctx, email, name, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "created %s (%s)\n", user.Email, user.ID)
	return nil
}

func (a *App) deleteUser(ctx context.Context, repos repomanager.RepositoryManager, email string) error {
	if email == "" {
		return fmt.Errorf("-email is required")
	}

	user, err := repos.Users().FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := repos.Users().Delete(ctx, user); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "deleted %s (%s)\n", user.Email, user.ID)
	return nil
}
