package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_QueueRequiresTokenAndTargetWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QUEUE_ENABLED", "true")
	t.Setenv("QUEUE_TOKEN", "")
	t.Setenv("QUEUE_TARGET_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QUEUE_ENABLED=true without QUEUE_TOKEN")
	}

	t.Setenv("QUEUE_TOKEN", "token-123")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QUEUE_ENABLED=true without QUEUE_TARGET_BASE_URL")
	}

	t.Setenv("QUEUE_TARGET_BASE_URL", "https://api.fulbito.app")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QUEUE_ENABLED=true without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.QueueToken != "token-123" {
		t.Fatalf("unexpected QueueToken")
	}
	if cfg.QueueTargetBaseURL != "https://api.fulbito.app" {
		t.Fatalf("unexpected QueueTargetBaseURL: %q", cfg.QueueTargetBaseURL)
	}
	if cfg.InternalJobToken != "job-secret" {
		t.Fatalf("unexpected InternalJobToken")
	}
}

func TestLoad_QueueCircuitParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QUEUE_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("QUEUE_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.QueueCircuitFailureCount != 7 {
		t.Fatalf("unexpected QueueCircuitFailureCount: %d", cfg.QueueCircuitFailureCount)
	}
	if cfg.QueueCircuitOpenTimeout != 30*time.Second {
		t.Fatalf("unexpected QueueCircuitOpenTimeout: %s", cfg.QueueCircuitOpenTimeout)
	}
	if cfg.QueueCircuitHalfOpenMaxReq != 3 {
		t.Fatalf("unexpected QueueCircuitHalfOpenMaxReq: %d", cfg.QueueCircuitHalfOpenMaxReq)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.EvaluationReminderGrace != 2*time.Hour {
		t.Fatalf("unexpected EvaluationReminderGrace: %s", cfg.EvaluationReminderGrace)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.QueueEnabled {
		t.Fatalf("expected QueueEnabled=false by default")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"bogus", "info"},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in).String(); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%s want=%s", tt.in, got, tt.want)
		}
	}
}
