package cli

import (
	"fmt"

	"github.com/audittrail/trailgauge/internal/infrastructure/wiring"
)

func loadServices() (*wiring.AppServices, error) {
	services, err := wiring.BuildAppServices(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}
	return services, nil
}
