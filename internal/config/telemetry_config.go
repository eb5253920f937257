package config

const (
	serviceVersionVar    = "SERVICE_VERSION"
	tracingEnabledVar    = "TRACING_ENABLED"
	tracingEndpointVar   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	tracingSampleRateVar = "TRACING_SAMPLE_RATE"
	profilingEnabledVar  = "PROFILING_ENABLED"
	pyroscopeEndpointVar = "PYROSCOPE_ENDPOINT"
)

type TelemetryConfig interface {
	GetServiceVersion() string
	GetTracingEnabled() bool
	GetTracingEndpoint() string
	GetTracingSampleRate() float64
	GetProfilingEnabled() bool
	GetProfilingEndpoint() string
}

type Telemetry struct{}

var _ TelemetryConfig = Telemetry{}

func (Telemetry) GetServiceVersion() string {
	return GetEnv(serviceVersionVar, "dev")
}

func (Telemetry) GetTracingEnabled() bool {
	return GetBool(tracingEnabledVar, false)
}

func (Telemetry) GetTracingEndpoint() string {
	return GetEnv(tracingEndpointVar, "localhost:4318")
}

func (Telemetry) GetTracingSampleRate() float64 {
	return GetFloat(tracingSampleRateVar, 1.0)
}

func (Telemetry) GetProfilingEnabled() bool {
	return GetBool(profilingEnabledVar, false)
}

func (Telemetry) GetProfilingEndpoint() string {
	return GetEnv(pyroscopeEndpointVar, "http://localhost:4040")
}
