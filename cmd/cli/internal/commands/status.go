package commands

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/wolfeidau/transferctl/internal/session"
)

type StatusCmd struct{}

func (s *StatusCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	app.session.Resume(ctx)
	snap := app.session.Current()

	pterm.DefaultSection.Println("Session Status")
	pterm.Info.Printf("Endpoint: %s\n", app.cfg.Endpoint)

	if snap.Status != session.StatusAuthenticated {
		pterm.Warning.Println("Not logged in")
		pterm.Info.Println("Run 'transferctl login' to authenticate")
		return nil
	}

	pterm.Success.Printf("Logged in as %s (%s)\n", snap.User.Username, snap.User.Role)

	desc := view(snap)
	pterm.DefaultSection.Println("Capabilities")
	printCapability("Vehicle management", desc.ManageVehicles)
	printCapability("Service requests", desc.SubmitRequests)
	printCapability("Assigned transfers", desc.ViewAssignedTransfers)

	return nil
}

func printCapability(name string, enabled bool) {
	if enabled {
		pterm.Success.Printf("%s: enabled\n", name)
		return
	}
	pterm.Info.Printf("%s: disabled\n", name)
}
