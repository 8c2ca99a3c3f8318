package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"firebase": map[string]any{
			"projectId":       "demo",
			"credentialsPath": "",
		},
		"checkout": map[string]any{
			"taxRate": 0.08,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "FIREBASE_PROJECTID", want: "firebase.projectId"},
		{envKey: "FIREBASE_CREDENTIALSPATH", want: "firebase.credentialsPath"},
		{envKey: "CHECKOUT_TAXRATE", want: "checkout.taxRate"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsOmittedSections(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Catalog.FetchLimit != 50 {
		t.Fatalf("catalog fetch limit = %d, want 50", cfg.Catalog.FetchLimit)
	}
	if cfg.Hero.MaxSlots != 5 {
		t.Fatalf("hero max slots = %d, want 5", cfg.Hero.MaxSlots)
	}
	if cfg.Checkout.TaxRate != 0.08 {
		t.Fatalf("tax rate = %v, want 0.08", cfg.Checkout.TaxRate)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("access ttl = %v, want 15m", cfg.Auth.AccessTokenTTL)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Checkout: &CheckoutConfig{TaxRate: 0.05, ShippingFlat: 9.9},
		Hero:     &HeroConfig{MaxSlots: 3},
	}
	applyDefaults(cfg)

	if cfg.Checkout.TaxRate != 0.05 {
		t.Fatalf("tax rate = %v, want 0.05", cfg.Checkout.TaxRate)
	}
	if cfg.Hero.MaxSlots != 3 {
		t.Fatalf("hero max slots = %d, want 3", cfg.Hero.MaxSlots)
	}
}
