package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/wolfeidau/transferctl/internal/models"
	"github.com/wolfeidau/transferctl/internal/routes"
)

// RequestsCmd submits and tracks service requests. Client and User capability.
type RequestsCmd struct {
	List   RequestsListCmd   `cmd:"" help:"List your service requests"`
	Submit RequestsSubmitCmd `cmd:"" help:"Submit a new service request"`
}

type RequestsListCmd struct{}

func (r *RequestsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	snap, err := app.navigate(ctx, routes.RouteRequests)
	if err != nil {
		return err
	}

	if !view(snap).SubmitRequests {
		return fmt.Errorf("role %s cannot track service requests", snap.User.Role)
	}

	requests, err := app.client.ListServiceRequests(ctx)
	if err != nil {
		return fmt.Errorf("failed to list service requests: %w", err)
	}

	printServiceRequests(requests)
	return nil
}

type RequestsSubmitCmd struct {
	From string `help:"Start location" required:""`
	To   string `help:"End location" required:""`
	At   string `help:"Requested date and time (RFC 3339)" required:""`
}

func (r *RequestsSubmitCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	snap, err := app.navigate(ctx, routes.RouteRequests)
	if err != nil {
		return err
	}

	if !view(snap).SubmitRequests {
		return fmt.Errorf("role %s cannot submit service requests", snap.User.Role)
	}

	created, err := app.client.SubmitServiceRequest(ctx, models.ServiceRequest{
		StartLocation:     r.From,
		EndLocation:       r.To,
		RequestedDatetime: r.At,
	})
	if err != nil {
		return fmt.Errorf("failed to submit service request: %w", err)
	}

	fmt.Printf("Submitted request %d (%s -> %s)\n", created.ID, created.StartLocation, created.EndLocation)
	return nil
}

func printServiceRequests(requests []models.ServiceRequest) {
	if len(requests) == 0 {
		fmt.Println("No service requests found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tTO\tWHEN\tSTATUS")
	for _, r := range requests {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.StartLocation, r.EndLocation, r.RequestedDatetime, r.Status)
	}
	w.Flush()
}
