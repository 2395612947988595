package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wolfeidau/transferctl/internal/routes"
)

type LoginCmd struct {
	Username string `arg:"" optional:"" help:"Username to authenticate as"`
	Password string `help:"Password (prompted when omitted)" env:"TRANSFERCTL_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	snap, err := app.navigate(ctx, routes.RouteLogin)
	if err != nil {
		if snap.User != nil {
			return fmt.Errorf("already logged in as %s, run 'transferctl logout' first", snap.User.Username)
		}
		return err
	}

	username := l.Username
	if username == "" {
		fmt.Print("Username: ")
		if _, err := fmt.Scanln(&username); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(username)
	}

	password := l.Password
	if password == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}

	if !app.session.Login(ctx, username, password) {
		return fmt.Errorf("login failed")
	}

	user := app.session.Current().User
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Role)
	return nil
}
