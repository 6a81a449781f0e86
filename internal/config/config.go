package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fulbito-app/fulbito/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LogLevel                logging.Level

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	InternalJobToken string

	QueueEnabled               bool
	QueueBaseURL               string
	QueueToken                 string
	QueueTargetBaseURL         string
	QueueRetries               int
	QueueTimeout               time.Duration
	QueueCircuitEnabled        bool
	QueueCircuitFailureCount   int
	QueueCircuitOpenTimeout    time.Duration
	QueueCircuitHalfOpenMaxReq int

	EvaluationReminderGrace time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	queueEnabled, err := strconv.ParseBool(getEnv("QUEUE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_ENABLED: %w", err)
	}
	queueBaseURL := strings.TrimSpace(getEnv("QUEUE_BASE_URL", "https://qstash.upstash.io"))
	queueToken := strings.TrimSpace(getEnv("QUEUE_TOKEN", ""))
	queueTargetBaseURL := strings.TrimSpace(getEnv("QUEUE_TARGET_BASE_URL", ""))
	if queueEnabled {
		if queueToken == "" {
			return Config{}, fmt.Errorf("QUEUE_TOKEN is required when QUEUE_ENABLED=true")
		}
		if queueTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QUEUE_TARGET_BASE_URL is required when QUEUE_ENABLED=true")
		}
	}
	queueRetries, err := getEnvAsInt("QUEUE_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_RETRIES: %w", err)
	}
	if queueRetries < 0 {
		return Config{}, fmt.Errorf("QUEUE_RETRIES must be >= 0")
	}
	queueTimeout, err := time.ParseDuration(getEnv("QUEUE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_TIMEOUT: %w", err)
	}
	if queueTimeout <= 0 {
		return Config{}, fmt.Errorf("QUEUE_TIMEOUT must be > 0")
	}
	queueCircuitEnabled, err := strconv.ParseBool(getEnv("QUEUE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_ENABLED: %w", err)
	}
	queueCircuitFailureCount, err := getEnvAsInt("QUEUE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if queueCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("QUEUE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	queueCircuitOpenTimeout, err := time.ParseDuration(getEnv("QUEUE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if queueCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("QUEUE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	queueCircuitHalfOpenMaxReq, err := getEnvAsInt("QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if queueCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	reminderGrace, err := time.ParseDuration(getEnv("EVALUATION_REMINDER_GRACE", "2h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EVALUATION_REMINDER_GRACE: %w", err)
	}
	if reminderGrace <= 0 {
		return Config{}, fmt.Errorf("EVALUATION_REMINDER_GRACE must be > 0")
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if queueEnabled && internalJobToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QUEUE_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("SERVICE_NAME", "fulbito-api"),
		ServiceVersion:          getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_ADDR", ":8080"),
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheTTL:                cacheTTL,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "fulbito-api"),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		InternalJobToken: internalJobToken,

		QueueEnabled:               queueEnabled,
		QueueBaseURL:               queueBaseURL,
		QueueToken:                 queueToken,
		QueueTargetBaseURL:         queueTargetBaseURL,
		QueueRetries:               queueRetries,
		QueueTimeout:               queueTimeout,
		QueueCircuitEnabled:        queueCircuitEnabled,
		QueueCircuitFailureCount:   queueCircuitFailureCount,
		QueueCircuitOpenTimeout:    queueCircuitOpenTimeout,
		QueueCircuitHalfOpenMaxReq: queueCircuitHalfOpenMaxReq,

		EvaluationReminderGrace: reminderGrace,
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
