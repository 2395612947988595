package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/wolfeidau/transferctl/internal/models"
	"github.com/wolfeidau/transferctl/internal/routes"
)

// TransfersCmd lists assigned transfers. Operator capability.
type TransfersCmd struct {
	List TransfersListCmd `cmd:"" default:"1" help:"List your assigned transfers"`
}

type TransfersListCmd struct{}

func (t *TransfersListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	snap, err := app.navigate(ctx, routes.RouteTransfers)
	if err != nil {
		return err
	}

	if !view(snap).ViewAssignedTransfers {
		return fmt.Errorf("role %s has no assigned transfers", snap.User.Role)
	}

	transfers, err := app.client.ListTransfers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list transfers: %w", err)
	}

	printTransfers(transfers)
	return nil
}

func printTransfers(transfers []models.Transfer) {
	if len(transfers) == 0 {
		fmt.Println("No transfers found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tVEHICLE\tFROM\tTO\tSCHEDULED\tSTATUS")
	for _, tr := range transfers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tr.ID, tr.Client, tr.Vehicle, tr.StartLocation, tr.EndLocation, tr.ScheduledStartTime, tr.Status)
	}
	w.Flush()
}
