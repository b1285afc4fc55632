package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fr0stylo/proxitrace/internal/app/services"
	"github.com/fr0stylo/proxitrace/internal/db"
	"github.com/fr0stylo/proxitrace/internal/epoch"
	"github.com/fr0stylo/proxitrace/internal/observability"
	"github.com/fr0stylo/proxitrace/internal/retention"
)

const (
	defaultPort           = 8080
	defaultRetentionDays  = 21
	defaultWindowSeconds  = 60
	defaultBatchSeconds   = 7200
	defaultTxPower        = 12.0
	defaultAttenuationThr = 73.0
)

type Config struct {
	Environment   string
	LogLevel      string
	Server        ServerConfig
	Database      DatabaseConfig
	Matching      MatchingConfig
	Retention     RetentionConfig
	MQTT          MQTTConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Path string
}

type MatchingConfig struct {
	DefaultTxPowerLevel         float64
	ContactAttenuationThreshold float64
	WindowSeconds               int
	EpochSeconds                int
	BatchSeconds                int
	Calibration                 bool
}

type RetentionConfig struct {
	Days     int
	Schedule string
	Timeout  time.Duration
}

type MQTTConfig struct {
	Broker   string
	Topic    string
	Username string
	Password string
	ClientID string
	UseTLS   bool
	QoS      int
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("proxitrace_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("proxitrace_log_level", "info")
	v.SetDefault("proxitrace_port", defaultPort)
	v.SetDefault("proxitrace_db_path", db.DefaultPath)
	v.SetDefault("proxitrace_tx_power_default", defaultTxPower)
	v.SetDefault("proxitrace_attenuation_threshold", defaultAttenuationThr)
	v.SetDefault("proxitrace_window_seconds", defaultWindowSeconds)
	v.SetDefault("proxitrace_epoch_seconds", int(epoch.DefaultLength/time.Second))
	v.SetDefault("proxitrace_batch_seconds", defaultBatchSeconds)
	v.SetDefault("proxitrace_calibration", false)
	v.SetDefault("proxitrace_retention_days", defaultRetentionDays)
	v.SetDefault("proxitrace_sweep_schedule", retention.DefaultSchedule)
	v.SetDefault("proxitrace_sweep_timeout_seconds", 300)
	v.SetDefault("proxitrace_mqtt_broker", "")
	v.SetDefault("proxitrace_mqtt_topic", "")
	v.SetDefault("proxitrace_mqtt_username", "")
	v.SetDefault("proxitrace_mqtt_password", "")
	v.SetDefault("proxitrace_mqtt_client_id", "")
	v.SetDefault("proxitrace_mqtt_tls", false)
	v.SetDefault("proxitrace_mqtt_qos", 1)
	v.SetDefault("proxitrace_otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", "proxitrace")
	v.SetDefault("proxitrace_version", "dev")
	v.SetDefault("otel_service_version", "")
	v.SetDefault("proxitrace_otel_sampling_ratio", 1.0)
	v.SetDefault("proxitrace_otel_metrics_console", false)

	port := v.GetInt("proxitrace_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PROXITRACE_PORT: %d", port)
	}

	matching := MatchingConfig{
		DefaultTxPowerLevel:         v.GetFloat64("proxitrace_tx_power_default"),
		ContactAttenuationThreshold: v.GetFloat64("proxitrace_attenuation_threshold"),
		WindowSeconds:               positiveOr(v.GetInt("proxitrace_window_seconds"), defaultWindowSeconds),
		EpochSeconds:                positiveOr(v.GetInt("proxitrace_epoch_seconds"), int(epoch.DefaultLength/time.Second)),
		BatchSeconds:                positiveOr(v.GetInt("proxitrace_batch_seconds"), defaultBatchSeconds),
		Calibration:                 v.GetBool("proxitrace_calibration"),
	}
	if matching.ContactAttenuationThreshold <= 0 {
		matching.ContactAttenuationThreshold = defaultAttenuationThr
	}
	if matching.WindowSeconds > matching.EpochSeconds {
		return Config{}, fmt.Errorf("PROXITRACE_WINDOW_SECONDS (%d) must not exceed PROXITRACE_EPOCH_SECONDS (%d)", matching.WindowSeconds, matching.EpochSeconds)
	}

	qos := v.GetInt("proxitrace_mqtt_qos")
	if qos < 0 || qos > 2 {
		qos = 1
	}

	samplingRatio := v.GetFloat64("proxitrace_otel_sampling_ratio")
	if samplingRatio < 0 {
		samplingRatio = 0
	}
	if samplingRatio > 1 {
		samplingRatio = 1
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = "proxitrace"
	}
	serviceVersion := strings.TrimSpace(v.GetString("proxitrace_version"))
	if serviceVersion == "" {
		serviceVersion = strings.TrimSpace(v.GetString("otel_service_version"))
	}
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	metricsConsole := v.GetBool("proxitrace_otel_metrics_console")

	cfg := Config{
		Environment: resolveEnvironment(v),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString("proxitrace_log_level"))),
		Server:      ServerConfig{Port: port},
		Database:    DatabaseConfig{Path: strings.TrimSpace(v.GetString("proxitrace_db_path"))},
		Matching:    matching,
		Retention: RetentionConfig{
			Days:     positiveOr(v.GetInt("proxitrace_retention_days"), defaultRetentionDays),
			Schedule: strings.TrimSpace(v.GetString("proxitrace_sweep_schedule")),
			Timeout:  time.Duration(positiveOr(v.GetInt("proxitrace_sweep_timeout_seconds"), 300)) * time.Second,
		},
		MQTT: MQTTConfig{
			Broker:   strings.TrimSpace(v.GetString("proxitrace_mqtt_broker")),
			Topic:    strings.TrimSpace(v.GetString("proxitrace_mqtt_topic")),
			Username: strings.TrimSpace(v.GetString("proxitrace_mqtt_username")),
			Password: v.GetString("proxitrace_mqtt_password"),
			ClientID: strings.TrimSpace(v.GetString("proxitrace_mqtt_client_id")),
			UseTLS:   v.GetBool("proxitrace_mqtt_tls"),
			QoS:      qos,
		},
		Observability: ObservabilityConfig{
			Enabled:           v.GetBool("proxitrace_otel_enabled") || otlpEndpoint != "" || metricsConsole,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))),
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = db.DefaultPath
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = retention.DefaultSchedule
	}

	return cfg, nil
}

// ContactMatching returns the aggregation parameters.
func (c Config) ContactMatching() services.ContactMatchingConfig {
	return services.ContactMatchingConfig{
		DefaultTxPowerLevel:         c.Matching.DefaultTxPowerLevel,
		ContactAttenuationThreshold: c.Matching.ContactAttenuationThreshold,
		WindowDuration:              time.Duration(c.Matching.WindowSeconds) * time.Second,
		EpochDuration:               time.Duration(c.Matching.EpochSeconds) * time.Second,
		BatchLength:                 time.Duration(c.Matching.BatchSeconds) * time.Second,
		Calibration:                 c.Matching.Calibration,
	}
}

// RetentionPeriod is how long contacts are kept.
func (c Config) RetentionPeriod() time.Duration {
	return time.Duration(c.Retention.Days) * 24 * time.Hour
}

// OpenTelemetry maps the observability section to exporter settings.
func (c Config) OpenTelemetry() observability.OpenTelemetryConfig {
	return observability.OpenTelemetryConfig{
		Enabled:           c.Observability.Enabled,
		OTLPEndpoint:      c.Observability.OTLPEndpoint,
		OTLPTraceHeaders:  c.Observability.OTLPTraceHeaders,
		OTLPMetricHeaders: c.Observability.OTLPMetricHeaders,
		ServiceName:       c.Observability.ServiceName,
		ServiceVer:        c.Observability.ServiceVer,
		SamplingRatio:     c.Observability.SamplingRatio,
		MetricsConsole:    c.Observability.MetricsConsole,
	}
}

// IsLocalDevelopment reports whether the process runs outside a deployed environment.
// Deployed daemons log JSON.
func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"proxitrace_env", "app_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
