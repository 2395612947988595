package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/transferctl/internal/api"
	"github.com/wolfeidau/transferctl/internal/config"
	"github.com/wolfeidau/transferctl/internal/roles"
	"github.com/wolfeidau/transferctl/internal/routes"
	"github.com/wolfeidau/transferctl/internal/session"
)

type Globals struct {
	Debug      bool
	Version    string
	ConfigPath string
	Endpoint   string
}

// app wires the client, token store, and session store for one command
// invocation.
type app struct {
	cfg     config.Config
	client  *api.Client
	session *session.Store
}

func newApp(globals *Globals) (*app, error) {
	path := globals.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if globals.Endpoint != "" {
		cfg.Endpoint = globals.Endpoint
	}

	client, err := api.New(api.Config{Endpoint: cfg.Endpoint, Timeout: cfg.Timeout, Debug: globals.Debug}, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	tokens, err := session.NewFileTokenStore(cfg.TokenDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token store: %w", err)
	}

	return &app{
		cfg:     cfg,
		client:  client,
		session: session.NewStore(client, tokens),
	}, nil
}

// navigate resolves any pending startup validation and then asks the route
// guard whether route may render. Redirect decisions become errors telling
// the user where to go instead.
func (a *app) navigate(ctx context.Context, route routes.Route) (session.Snapshot, error) {
	a.session.Resume(ctx)

	snap := a.session.Current()
	switch decision := routes.Evaluate(route, snap.Status); decision {
	case routes.DecisionRender:
		return snap, nil
	case routes.DecisionRedirectLogin:
		return snap, fmt.Errorf("not logged in, run 'transferctl login' first")
	case routes.DecisionRedirectDashboard:
		return snap, fmt.Errorf("already logged in, see 'transferctl dashboard'")
	default:
		return snap, fmt.Errorf("session is still resolving, try again")
	}
}

// view returns the descriptor for the authenticated user in snap.
func view(snap session.Snapshot) roles.ViewDescriptor {
	if snap.User == nil {
		return roles.DescriptorFor(roles.RoleUnknown)
	}
	return roles.DescriptorFor(roles.ParseRole(snap.User.Role))
}
