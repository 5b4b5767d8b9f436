// Package stream owns the message-bus harness around the mapping engine:
// one consumer per worker, a shared producer for the output topic, a
// dead-letter producer for non-retryable message defects, and the
// commit-after-publish discipline tying them together.
package stream

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/diz-unimr/adt2fhir/internal/config"
)

// tlsConfig builds the client TLS settings from the optional ssl config
// block. A nil block (securityProtocol=plaintext) yields a nil *tls.Config.
func tlsConfig(cfg config.KafkaConfig) (*tls.Config, error) {
	if !strings.EqualFold(cfg.SecurityProtocol, "ssl") {
		return nil, nil
	}
	ssl := cfg.SSL
	if ssl == nil {
		return nil, errors.New("securityProtocol is ssl but no ssl block is configured")
	}
	if ssl.KeyPassword != "" {
		return nil, errors.New("encrypted private keys are not supported; provide the key decrypted")
	}

	tc := &tls.Config{MinVersion: tls.VersionTLS12}
	if ssl.CALocation != "" {
		pem, err := os.ReadFile(ssl.CALocation)
		if err != nil {
			return nil, fmt.Errorf("reading CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no CA certificates found in %s", ssl.CALocation)
		}
		tc.RootCAs = pool
	}
	if ssl.CertificateLocation != "" || ssl.KeyLocation != "" {
		cert, err := tls.LoadX509KeyPair(ssl.CertificateLocation, ssl.KeyLocation)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}
		tc.Certificates = []tls.Certificate{cert}
	}
	return tc, nil
}

func startOffset(offsetReset string) int64 {
	if strings.EqualFold(offsetReset, "latest") {
		return kafka.LastOffset
	}
	return kafka.FirstOffset
}

// newReader builds one consumer for the input topic. Every worker owns its
// own reader; the shared consumer group spreads the topic's partitions
// across them.
func newReader(cfg config.KafkaConfig, tc *tls.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     strings.Split(cfg.Brokers, ","),
		GroupID:     cfg.ConsumerGroup,
		Topic:       cfg.InputTopic,
		StartOffset: startOffset(cfg.OffsetReset),
		Dialer: &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
			TLS:       tc,
		},
	})
}

// newWriter builds a producer for topic. A kafka.Writer is safe for
// concurrent use, so one output writer is shared across all workers.
func newWriter(cfg config.KafkaConfig, topic string, tc *tls.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.Brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Transport:    &kafka.Transport{TLS: tc},
	}
}
