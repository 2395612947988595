package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/transferctl/cmd/cli/internal/commands"
	"github.com/wolfeidau/transferctl/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login     commands.LoginCmd     `cmd:"" help:"Log in to the transfer service"`
		Logout    commands.LogoutCmd    `cmd:"" help:"Log out and discard the stored token"`
		Status    commands.StatusCmd    `cmd:"" help:"Show session status"`
		Dashboard commands.DashboardCmd `cmd:"" help:"Show the role-specific dashboard"`
		Vehicles  commands.VehiclesCmd  `cmd:"" help:"Manage fleet vehicles"`
		Requests  commands.RequestsCmd  `cmd:"" help:"Submit and track service requests"`
		Transfers commands.TransfersCmd `cmd:"" help:"List assigned transfers"`
		Ping      commands.PingCmd      `cmd:"" help:"Check server reachability"`
		Config    string                `help:"Config file path" type:"path"`
		Endpoint  string                `help:"Override the API endpoint"`
		Debug     bool                  `help:"Enable debug mode."`
		Version   kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	log.Logger = logger.Setup(cli.Debug)
	err := cmd.Run(&commands.Globals{
		Debug:      cli.Debug,
		Version:    version,
		ConfigPath: cli.Config,
		Endpoint:   cli.Endpoint,
	})
	cmd.FatalIfErrorf(err)
}
