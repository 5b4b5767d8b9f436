package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExampleConfig(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092")

	cfg, err := Load("../../config.example.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kafka.Brokers != "broker-1:9092" {
		t.Fatalf("Kafka.Brokers = %q, want broker-1:9092 (from ${KAFKA_BROKERS})", cfg.Kafka.Brokers)
	}
	if cfg.Fhir.Person.System != "https://fhir.diz.uni-marburg.de/sid/patient-id" {
		t.Fatalf("Fhir.Person.System = %q", cfg.Fhir.Person.System)
	}
	if cfg.Kafka.Partitions != 3 {
		t.Fatalf("Kafka.Partitions = %d, want 3", cfg.Kafka.Partitions)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	// A file without an app block, so AdminAddr can only come from the defaults.
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("kafka:\n  brokers: broker-1:9092\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.AdminAddr != ":8080" {
		t.Fatalf("App.AdminAddr = %q, want :8080", cfg.App.AdminAddr)
	}
}

func TestEnvOverrideViaViper(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092")
	t.Setenv("ADT2FHIR_KAFKA_CONSUMERGROUP", "overridden-group")
	cfg, err := Load("../../config.example.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kafka.ConsumerGroup != "overridden-group" {
		t.Fatalf("Kafka.ConsumerGroup = %q, want overridden-group", cfg.Kafka.ConsumerGroup)
	}
}
