package config

import (
	"errors"
	"testing"
	"time"

	apperrors "profitflow/internal/errors"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("PLATFORM_FEE_PCT", "")
		t.Setenv("UNKNOWN_PLAN_POLICY", "")
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("OUTBOX_POLL_INTERVAL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PlatformFeePct.String() != "7" {
			t.Errorf("expected default fee 7, got %s", cfg.PlatformFeePct)
		}
		if cfg.UnknownPlanPolicy != PlanPolicyFallback {
			t.Errorf("expected fallback policy, got %s", cfg.UnknownPlanPolicy)
		}
		if len(cfg.KafkaBrokers) != 0 {
			t.Errorf("expected no kafka brokers, got %v", cfg.KafkaBrokers)
		}
		if cfg.OutboxPollInterval != 5*time.Second {
			t.Errorf("expected 5s poll interval, got %s", cfg.OutboxPollInterval)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("PLATFORM_FEE_PCT", "12.5")
		t.Setenv("UNKNOWN_PLAN_POLICY", "STRICT")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
		t.Setenv("OUTBOX_POLL_INTERVAL", "250ms")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PlatformFeePct.String() != "12.5" {
			t.Errorf("expected fee 12.5, got %s", cfg.PlatformFeePct)
		}
		if cfg.UnknownPlanPolicy != PlanPolicyStrict {
			t.Errorf("expected strict policy, got %s", cfg.UnknownPlanPolicy)
		}
		if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
			t.Errorf("unexpected brokers %v", cfg.KafkaBrokers)
		}
		if cfg.OutboxPollInterval != 250*time.Millisecond {
			t.Errorf("expected 250ms, got %s", cfg.OutboxPollInterval)
		}
	})

	t.Run("production_with_own_secret", func(t *testing.T) {
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "rotated-production-secret")
		t.Setenv("PLATFORM_FEE_PCT", "")
		t.Setenv("UNKNOWN_PLAN_POLICY", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.IsProduction() || cfg.JWTSecret != "rotated-production-secret" {
			t.Errorf("unexpected config %+v", cfg)
		}
	})

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"fee_with_percent_sign", map[string]string{"PLATFORM_FEE_PCT": "5%"}},
		{"fee_above_100", map[string]string{"PLATFORM_FEE_PCT": "150"}},
		{"negative_fee", map[string]string{"PLATFORM_FEE_PCT": "-1"}},
		{"unknown_policy", map[string]string{"UNKNOWN_PLAN_POLICY": "maybe"}},
		{"production_without_secret", map[string]string{"ENV": "production", "JWT_SECRET": ""}},
		{"production_with_dev_secret", map[string]string{"ENV": "production", "JWT_SECRET": devJWTSecret}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ENV", "JWT_SECRET", "PLATFORM_FEE_PCT", "UNKNOWN_PLAN_POLICY"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := Load()
			if !errors.Is(err, apperrors.ErrServerConfiguration) {
				t.Fatalf("expected server_configuration_error, got %v", err)
			}
			if cfg != nil {
				t.Errorf("expected no config, got %+v", cfg)
			}
		})
	}
}
