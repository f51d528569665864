// Package wiring assembles the application services from configuration.
package wiring

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/audittrail/trailgauge/internal/application"
	"github.com/audittrail/trailgauge/internal/extract"
	"github.com/audittrail/trailgauge/internal/infrastructure/backend"
	"github.com/audittrail/trailgauge/internal/infrastructure/config"
	"github.com/audittrail/trailgauge/internal/infrastructure/logging"
	"github.com/audittrail/trailgauge/internal/infrastructure/sink"
)

type AppServices struct {
	Config    *config.Config
	Log       *zap.Logger
	Audit     *application.AuditService
	Exporter  *sink.FileExporter
	Clipboard sink.Clipboard
}

// BuildAppServices loads .env and the YAML config, resolves the endpoint once
// for the session, and constructs the service graph.
func BuildAppServices(configPath string) (*AppServices, error) {
	// Same dotenv behavior as the backend itself; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(cfg.Logging)

	extractor, err := extract.New(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.ResolveEndpoint()
	client := backend.NewClient(endpoint, cfg.Encoding)
	caller := backend.NewTimeoutCaller(client, time.Duration(cfg.TimeoutSeconds)*time.Second)

	auditService, err := application.NewAuditService(caller, extractor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build audit service: %w", err)
	}

	return &AppServices{
		Config:    cfg,
		Log:       log,
		Audit:     auditService,
		Exporter:  sink.NewFileExporter("."),
		Clipboard: sink.Clipboard{},
	}, nil
}
