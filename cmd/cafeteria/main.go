package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/giovaniif/cafeteria/cmd/api"
	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/infra/config"
	"github.com/giovaniif/cafeteria/infra/console"
	"github.com/giovaniif/cafeteria/infra/credentials"
	"github.com/giovaniif/cafeteria/infra/gateways"
	"github.com/giovaniif/cafeteria/infra/logger"
	"github.com/giovaniif/cafeteria/infra/loki"
	"github.com/giovaniif/cafeteria/infra/metrics"
	"github.com/giovaniif/cafeteria/infra/repositories"
	"github.com/giovaniif/cafeteria/infra/requestid"
	"github.com/giovaniif/cafeteria/infra/tracing"
	"github.com/giovaniif/cafeteria/use_cases/admin"
	"github.com/giovaniif/cafeteria/use_cases/checkout"
	"github.com/giovaniif/cafeteria/use_cases/complete"
	"github.com/giovaniif/cafeteria/use_cases/flow"
	"github.com/giovaniif/cafeteria/use_cases/release"
	"github.com/giovaniif/cafeteria/use_cases/reserve"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	var sinks []io.Writer
	if lokiWriter := loki.NewWriter(cfg.Log.LokiURL, map[string]string{"job": "cafeteria"}); lokiWriter != nil {
		defer lokiWriter.Close()
		sinks = append(sinks, lokiWriter)
	}
	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Component:   "cafeteria",
		Environment: config.GetEnv("APP_ENV", "development"),
	}, stderr, sinks...)

	shutdownTracing, err := tracing.Init(ctx, "cafeteria", cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}
	defer shutdownTracing(context.Background())

	receipts := openReceipts(ctx, cfg.Receipts, log)
	defer receipts.Close()

	if cfg.OpsAddr != "" {
		shutdown := api.StartServer(cfg.OpsAddr, receipts.checks, log)
		defer shutdown(context.Background())
	}

	catalog := repositories.NewMenuRepository(item.Seed())
	terminal := console.New(stdin, stdout)
	quantities := console.NewQuantities(terminal)
	recorder := metrics.NewRecorder()

	editor := admin.NewEditor(terminal, terminal, logger.WithComponent(log, "admin"))
	cafeteria := flow.NewFlow(
		terminal,
		terminal,
		catalog,
		admin.NewAuthenticate(catalog, credentials.NewFileSource(cfg.CredentialsPath), terminal, editor, recorder, logger.WithComponent(log, "admin"), cfg.PasswordAttempts),
		reserve.NewReserve(catalog, quantities, recorder, logger.WithComponent(log, "reserve")),
		release.NewRelease(catalog, quantities, recorder, logger.WithComponent(log, "release")),
		complete.NewComplete(logger.WithComponent(log, "complete")),
		checkout.NewCheckout(terminal, receipts.idempotency, receipts.publisher, gateways.NewSleeper(), recorder, logger.WithComponent(log, "checkout")),
		logger.WithComponent(log, "flow"),
	)

	session := cart.NewSession(requestid.Generate())
	ctx = requestid.NewContext(ctx, session.Id)
	result, err := cafeteria.Run(ctx, session)
	if errors.Is(err, io.EOF) {
		terminal.Say("Goodbye!")
		log.InfoContext(ctx, "input closed, session abandoned", "held_units", result.Session.Cart().TotalQuantity)
		return 0
	}
	if err != nil {
		log.ErrorContext(ctx, "session failed", "error", err)
		return 1
	}
	log.InfoContext(ctx, "session finished", "customer", result.Customer, "paid", result.Paid)
	return 0
}
