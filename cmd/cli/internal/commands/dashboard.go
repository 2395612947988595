package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/wolfeidau/transferctl/internal/routes"
)

type DashboardCmd struct{}

func (d *DashboardCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	snap, err := app.navigate(ctx, routes.RouteDashboard)
	if err != nil {
		return err
	}

	desc := view(snap)

	pterm.DefaultHeader.Println("Transfer Management System")
	pterm.Info.Printf("Welcome, %s (%s)\n", snap.User.Username, snap.User.Role)
	pterm.DefaultSection.Println(desc.Title)
	pterm.Info.Println(desc.Description)

	// Each dashboard variant preloads the list its role works with.
	switch {
	case desc.ManageVehicles:
		vehicles, err := app.client.ListVehicles(ctx)
		if err != nil {
			return fmt.Errorf("failed to list vehicles: %w", err)
		}
		printVehicles(vehicles)
	case desc.SubmitRequests:
		requests, err := app.client.ListServiceRequests(ctx)
		if err != nil {
			return fmt.Errorf("failed to list service requests: %w", err)
		}
		printServiceRequests(requests)
	case desc.ViewAssignedTransfers:
		transfers, err := app.client.ListTransfers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list transfers: %w", err)
		}
		printTransfers(transfers)
	}

	return nil
}
