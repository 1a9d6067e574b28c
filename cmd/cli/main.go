package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/adgenlab/adgen/cmd/cli/internal/commands"
	"github.com/adgenlab/adgen/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Auth    commands.AuthCmd    `cmd:"" help:"Log in, register and inspect the session"`
		Store   commands.StoreCmd   `cmd:"" help:"Manage stores (brand profiles)"`
		Project commands.ProjectCmd `cmd:"" help:"Manage ad campaign projects"`
		Content commands.ContentCmd `cmd:"" help:"Generate, upload and manage ad contents"`

		APIURL     string `help:"Backend API base URL" env:"ADGEN_API_URL"`
		Config     string `help:"Config file path (default: ~/.adgen/config.yaml)"`
		SessionDir string `help:"Custom session directory (default: ~/.adgen/session/)"`
		Debug      bool   `help:"Enable debug mode."`
		Version    kong.VersionFlag
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
		APIURL:     cli.APIURL,
		Config:     cli.Config,
		SessionDir: cli.SessionDir,
	})
	cmd.FatalIfErrorf(err)
}
