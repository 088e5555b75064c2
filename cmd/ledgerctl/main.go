// Command ledgerctl runs maintenance tasks against a ledger engine deployment.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/alecthomas/kong"
)

type globals struct {
	cfg    *config.Config
	logger *slog.Logger
}

type tokenCmd struct {
	User   string        `help:"User ID recorded as the actor of every change." arg:""`
	TTL    time.Duration `help:"How long the token stays valid." default:"24h"`
	Issuer string        `help:"Issuer claim." default:"ledgerctl"`
}

func (cmd *tokenCmd) Run(g *globals) error {
	token, err := utils.GenerateJWT(cmd.User, g.cfg.JWTSecret, cmd.TTL, cmd.Issuer)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

type migrateCmd struct{}

func (cmd *migrateCmd) Run(g *globals) error {
	return database.Migrate(g.cfg.DatabaseConfig(), g.logger)
}

var cli struct {
	Token   tokenCmd   `cmd:"" help:"Issue a bearer token for the API."`
	Migrate migrateCmd `cmd:"" help:"Apply pending database migrations."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("ledgerctl"),
		kong.Description("Maintenance commands for the ledger engine. Settings come from the environment and .env."),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig()
	ctx.FatalIfErrorf(err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	ctx.FatalIfErrorf(ctx.Run(&globals{cfg: cfg, logger: logger}))
}
