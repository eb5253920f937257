package telemetry

import (
	"fmt"

	"github.com/grafana/pyroscope-go"
	"github.com/jrsteele09/go-quiz-server/internal/config"
)

// InitProfiling starts continuous profiling against the configured
// Pyroscope server. Stop the returned profiler on shutdown.
func InitProfiling(cfg config.Config) (*pyroscope.Profiler, error) {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.GetAppName(),
		ServerAddress:   cfg.GetProfilingEndpoint(),
		Tags: map[string]string{
			"env":     cfg.GetEnv(),
			"version": cfg.GetServiceVersion(),
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("[telemetry InitProfiling] %w", err)
	}
	return profiler, nil
}
