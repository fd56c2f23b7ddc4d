// Package cli implements the command-line subcommands that run outside the
// HTTP server: operator account creation and one-shot catalog syncs.
package cli

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/svaldez/catalog-admin/internal/auth"
	"github.com/svaldez/catalog-admin/internal/config"
	"github.com/svaldez/catalog-admin/internal/database"
)

// CreateUserCommand creates an operator account from the command line.
// Needed to bootstrap the first account when AUTH_MODE=local, since the API
// itself requires authentication.
type CreateUserCommand struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new account (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email for the new account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password (prompted interactively when omitted)")
	fs.BoolVar(&cmd.IsAdmin, "admin", false, "Grant admin rights")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> -email <address> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an operator account in the local database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" || cmd.Email == "" {
		fs.Usage()
		return fmt.Errorf("username and email are required")
	}
	return nil
}

func (cmd *CreateUserCommand) Run() error {
	cfg := config.NewConfig()

	password := cmd.Password
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(db.DB, cfg.Auth)
	user, err := service.CreateUser(cmd.Username, cmd.Email, password, cmd.IsAdmin)
	if err != nil {
		return err
	}

	role := "operator"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Printf("Created %s account %q (id %d)\n", role, user.Username, user.ID)
	return nil
}
