package ch

import (
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		Hosts:    []string{"127.0.0.1:9000"},
		Username: "kv",
		Password: "secret",
	}
	if err := cfg.MergeDefaults().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	if err := (&Config{Username: "kv", Password: "secret"}).Validate(); err == nil {
		t.Error("expected error for missing hosts")
	}
	if err := (&Config{Hosts: []string{"h"}, Password: "secret"}).Validate(); err == nil {
		t.Error("expected error for missing username")
	}
	if err := (&Config{Hosts: []string{"h"}, Username: "kv"}).Validate(); err == nil {
		t.Error("expected error for missing password")
	}
}

func TestConfig_MergeDefaults(t *testing.T) {
	cfg := (&Config{
		Hosts:    []string{"127.0.0.1:9000"},
		Username: "kv",
		Password: "secret",
	}).MergeDefaults()

	if cfg.Database != "default" {
		t.Errorf("expected default database, got %q", cfg.Database)
	}
	if cfg.DialTimeout != 10*time.Second {
		t.Errorf("expected default dial timeout, got %v", cfg.DialTimeout)
	}
}

func TestSourceConfig_Validate(t *testing.T) {
	cfg := (&SourceConfig{Table: "kv_entries"}).MergeDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid source config rejected: %v", err)
	}

	for _, bad := range []string{"", "kv entries", "kv;drop", "1kv"} {
		cfg := (&SourceConfig{Table: bad}).MergeDefaults()
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for table identifier %q", bad)
		}
	}
}
