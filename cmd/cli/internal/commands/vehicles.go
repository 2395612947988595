package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/wolfeidau/transferctl/internal/models"
	"github.com/wolfeidau/transferctl/internal/routes"
)

// VehiclesCmd manages the fleet. Administrator capability.
type VehiclesCmd struct {
	List   VehiclesListCmd   `cmd:"" help:"List all vehicles"`
	Create VehiclesCreateCmd `cmd:"" help:"Register a new vehicle"`
}

type VehiclesListCmd struct{}

func (v *VehiclesListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	snap, err := app.navigate(ctx, routes.RouteVehicles)
	if err != nil {
		return err
	}

	if !view(snap).ManageVehicles {
		return fmt.Errorf("role %s cannot manage vehicles", snap.User.Role)
	}

	vehicles, err := app.client.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}

	printVehicles(vehicles)
	return nil
}

type VehiclesCreateCmd struct {
	ServiceClass string `help:"Service class (Auto, Van, Minibus, Bus)" required:""`
	LicensePlate string `help:"License plate" required:""`
	Capacity     int    `help:"Passenger capacity" required:""`
}

func (v *VehiclesCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}

	snap, err := app.navigate(ctx, routes.RouteVehicles)
	if err != nil {
		return err
	}

	if !view(snap).ManageVehicles {
		return fmt.Errorf("role %s cannot manage vehicles", snap.User.Role)
	}

	created, err := app.client.CreateVehicle(ctx, models.Vehicle{
		ServiceClass: v.ServiceClass,
		LicensePlate: v.LicensePlate,
		Capacity:     v.Capacity,
	})
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	fmt.Printf("Created vehicle %d (%s %s)\n", created.ID, created.ServiceClass, created.LicensePlate)
	return nil
}

func printVehicles(vehicles []models.Vehicle) {
	if len(vehicles) == 0 {
		fmt.Println("No vehicles found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLASS\tPLATE\tCAPACITY")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", v.ID, v.ServiceClass, v.LicensePlate, v.Capacity)
	}
	w.Flush()
}
