// Package config loads the service's layered configuration: a YAML file
// with `${VAR}`-style environment substitution, overlaid with direct
// `ADT2FHIR_*` environment-variable overrides bound through viper.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service: the bus harness settings
// plus the mapping engine's injected construction parameters.
type Config struct {
	App   AppConfig   `yaml:"app"`
	Kafka KafkaConfig `yaml:"kafka"`
	Fhir  FhirConfig  `yaml:"fhir"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	LogLevel   string `yaml:"logLevel"`
	AdminAddr  string `yaml:"adminAddr"`
	MappingDir string `yaml:"mappingDir"`
}

// SSLConfig carries the optional transport security settings for the bus
// client.
type SSLConfig struct {
	CALocation          string `yaml:"caLocation,omitempty"`
	KeyLocation         string `yaml:"keyLocation,omitempty"`
	CertificateLocation string `yaml:"certificateLocation,omitempty"`
	KeyPassword         string `yaml:"keyPassword,omitempty"`
}

// KafkaConfig holds the bus client settings: brokers, security protocol,
// consumer group, topics and offset-reset policy, plus the partition count
// the worker pool fans out to.
type KafkaConfig struct {
	Brokers          string     `yaml:"brokers"`
	SecurityProtocol string     `yaml:"securityProtocol"`
	ConsumerGroup    string     `yaml:"consumerGroup"`
	InputTopic       string     `yaml:"inputTopic"`
	OutputTopic      string     `yaml:"outputTopic"`
	DeadLetterTopic  string     `yaml:"deadLetterTopic"`
	OffsetReset      string     `yaml:"offsetReset"`
	Partitions       int        `yaml:"partitions"`
	SSL              *SSLConfig `yaml:"ssl,omitempty"`
}

// PersonConfig carries the Patient profile URL and identifier system.
type PersonConfig struct {
	Profile string `yaml:"profile"`
	System  string `yaml:"system"`
}

// FallConfig carries the Encounter profile URL and identifier systems.
type FallConfig struct {
	Profile             string                 `yaml:"profile"`
	System              string                 `yaml:"system"`
	Einrichtungskontakt EinrichtungskontaktCfg `yaml:"einrichtungskontakt"`
}

type EinrichtungskontaktCfg struct {
	System string `yaml:"system"`
}

// FhirConfig groups the person/fall mapping parameters.
type FhirConfig struct {
	Person PersonConfig `yaml:"person"`
	Fall   FallConfig   `yaml:"fall"`
}

// Load reads the YAML config file at path, applying `${VAR}` environment
// substitution before parsing, then layers direct environment-variable
// overrides on top: `ADT2FHIR_KAFKA_BROKERS` overrides `kafka.brokers`,
// and so on for every string-valued key.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("ADT2FHIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, dst := range map[string]*string{
		"app.loglevel":                         &cfg.App.LogLevel,
		"app.adminaddr":                        &cfg.App.AdminAddr,
		"app.mappingdir":                       &cfg.App.MappingDir,
		"kafka.brokers":                        &cfg.Kafka.Brokers,
		"kafka.securityprotocol":               &cfg.Kafka.SecurityProtocol,
		"kafka.consumergroup":                  &cfg.Kafka.ConsumerGroup,
		"kafka.inputtopic":                     &cfg.Kafka.InputTopic,
		"kafka.outputtopic":                    &cfg.Kafka.OutputTopic,
		"kafka.deadlettertopic":                &cfg.Kafka.DeadLetterTopic,
		"kafka.offsetreset":                    &cfg.Kafka.OffsetReset,
		"fhir.person.profile":                  &cfg.Fhir.Person.Profile,
		"fhir.person.system":                   &cfg.Fhir.Person.System,
		"fhir.fall.profile":                    &cfg.Fhir.Fall.Profile,
		"fhir.fall.system":                     &cfg.Fhir.Fall.System,
		"fhir.fall.einrichtungskontakt.system": &cfg.Fhir.Fall.Einrichtungskontakt.System,
	} {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	if n := v.GetInt("kafka.partitions"); n > 0 {
		cfg.Kafka.Partitions = n
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.App.AdminAddr == "" {
		cfg.App.AdminAddr = ":8080"
	}
	if cfg.App.MappingDir == "" {
		cfg.App.MappingDir = "resources/mapping"
	}
	if cfg.Kafka.Partitions == 0 {
		cfg.Kafka.Partitions = 3
	}
	if cfg.Kafka.OffsetReset == "" {
		cfg.Kafka.OffsetReset = "earliest"
	}
	if cfg.Kafka.SecurityProtocol == "" {
		cfg.Kafka.SecurityProtocol = "plaintext"
	}
}
