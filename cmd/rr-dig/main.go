package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/common/utils"
	"github.com/haukened/rr-dig/internal/dns/config"
	"github.com/haukened/rr-dig/internal/dns/domain"
	"github.com/haukened/rr-dig/internal/dns/gateways/transport"
	"github.com/haukened/rr-dig/internal/dns/gateways/wire"
	"github.com/haukened/rr-dig/internal/dns/services/exchange"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "rr-dig"
)

// Application holds the components of a single query run.
type Application struct {
	config     *config.AppConfig
	transport  transport.Transport
	controller *exchange.Controller
	name       string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one query and returns the process exit status. The report
// goes to stdout; usage problems go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	overrides, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR\tIncorrect input syntax: %v\n", err)
		return 2
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR\tConfiguration error: %v\n", err)
		return 1
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "ERROR\tLogging configuration error: %v\n", err)
		return 1
	}

	log.Debug(map[string]any{
		"version":     version,
		"env":         cfg.Env,
		"server":      cfg.ServerAddr(),
		"type":        cfg.Type,
		"timeout":     cfg.TimeoutDuration().String(),
		"max_retries": cfg.MaxRetries,
	}, "Starting "+appName)

	writePreamble(stdout, cfg)

	app, err := buildApplication(ctx, cfg)
	if err != nil {
		writeError(stdout, err)
		return 1
	}
	defer func() {
		if err := app.transport.Close(); err != nil {
			log.Warn(map[string]any{"error": err.Error()}, "failed to close transport")
		}
	}()

	res, err := app.controller.Resolve(ctx, app.name, cfg.QueryType())
	if err != nil {
		writeError(stdout, err)
		return 1
	}

	writeResult(stdout, res)
	return 0
}

// buildApplication prepares the query name and wires the codec, transport
// and controller together.
func buildApplication(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	name, err := utils.QueryName(cfg.Name)
	if err != nil {
		return nil, domain.WrapError(domain.KindUnsupportedQuery, "invalid query name", err)
	}

	tr, err := transport.NewTransport(ctx, transport.TransportUDP, cfg.ServerAddr(), transport.Options{
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	ctrl, err := exchange.NewController(exchange.Options{
		Codec:      wire.NewUDPCodec(logger, nil),
		Transport:  tr,
		Timeout:    cfg.TimeoutDuration(),
		MaxRetries: cfg.MaxRetries,
		Clock:      clock.RealClock{},
		Logger:     logger,
	})
	if err != nil {
		_ = tr.Close()
		return nil, fmt.Errorf("failed to build exchange controller: %w", err)
	}

	return &Application{
		config:     cfg,
		transport:  tr,
		controller: ctrl,
		name:       name,
	}, nil
}
