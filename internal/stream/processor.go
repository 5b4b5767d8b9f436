package stream

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/diz-unimr/adt2fhir/internal/config"
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/internal/mapping"
	"github.com/diz-unimr/adt2fhir/internal/stats"
)

// reader is the slice of kafka.Reader the processor uses, narrowed to an
// interface so worker logic is testable without a broker.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// writer is the slice of kafka.Writer the processor uses.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Processor runs the fixed pool of worker goroutines that bridge the input
// topic to the output topic through the mapping engine. All mutable state
// is per-worker or behind the stats registry; the engine itself is shared
// read-only.
type Processor struct {
	engine     *mapping.Engine
	output     writer
	deadLetter writer
	registry   *stats.Registry
	log        zerolog.Logger
	newReader  func() reader
	partitions int
}

// NewProcessor builds the processor and its bus clients from config. No
// connection is opened here; kafka clients dial lazily on first use.
func NewProcessor(cfg config.KafkaConfig, engine *mapping.Engine, registry *stats.Registry, log zerolog.Logger) (*Processor, error) {
	tc, err := tlsConfig(cfg)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		engine:     engine,
		output:     newWriter(cfg, cfg.OutputTopic, tc),
		registry:   registry,
		log:        log,
		newReader:  func() reader { return newReader(cfg, tc) },
		partitions: cfg.Partitions,
	}
	if cfg.DeadLetterTopic != "" {
		p.deadLetter = newWriter(cfg, cfg.DeadLetterTopic, tc)
	}
	return p, nil
}

// Run spawns one worker per configured partition and blocks until every
// worker has returned. Cancelling ctx stops all workers; an in-flight
// message whose offset was not yet committed is simply redelivered on the
// next start.
func (p *Processor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.partitions; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.runWorker(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (p *Processor) runWorker(ctx context.Context, id int) {
	log := p.log.With().Int("worker", id).Logger()
	r := p.newReader()
	defer r.Close()

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("fetching message failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		commit, err := p.handleMessage(ctx, id, log, msg)
		if err != nil {
			var builderErr *faults.BuilderError
			if errors.As(err, &builderErr) {
				// A builder fault is a mapper defect; skipping the message
				// would hide it, so this worker stops on its uncommitted
				// offset and the failure stays visible.
				log.Error().Err(err).
					Int("partition", msg.Partition).
					Int64("offset", msg.Offset).
					Msg("builder fault, stopping worker")
				return
			}
			log.Error().Err(err).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("publish failed, message will be redelivered")
		}
		if commit {
			if err := r.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Int64("offset", msg.Offset).Msg("offset commit failed")
			}
		}
	}
}

// handleMessage processes one consumed message: tombstones are skipped,
// mapper output is published, non-retryable message defects are routed to
// the dead-letter topic. The returned bool reports whether the input offset
// may be committed; it is false exactly when redelivery could still help
// (publish failure) or must stay visible (builder fault).
func (p *Processor) handleMessage(ctx context.Context, id int, log zerolog.Logger, msg kafka.Message) (bool, error) {
	p.registry.IncReceived(id)

	if len(msg.Value) == 0 {
		p.registry.IncSkipped(id)
		log.Debug().Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("tombstone, skipped")
		return true, nil
	}

	out, ok, err := p.engine.Map(string(msg.Value))
	if err != nil {
		var builderErr *faults.BuilderError
		if errors.As(err, &builderErr) {
			return false, err
		}
		return p.sendToDeadLetter(ctx, id, log, msg, err)
	}

	if !ok {
		p.registry.IncSkipped(id)
		log.Debug().Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("no output for message")
		return true, nil
	}
	p.registry.IncMapped(id)

	if err := p.output.WriteMessages(ctx, kafka.Message{
		Key:   msg.Key,
		Value: []byte(out),
		Time:  msg.Time,
	}); err != nil {
		return false, err
	}
	p.registry.IncPublished(id)
	log.Info().Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("bundle published")
	return true, nil
}

// sendToDeadLetter forwards the raw payload of a non-retryably defective
// message. The input offset is still committed afterwards: redelivery would
// only reproduce the same fault. If no dead-letter topic is configured the
// defect is logged and the message dropped.
func (p *Processor) sendToDeadLetter(ctx context.Context, id int, log zerolog.Logger, msg kafka.Message, cause error) (bool, error) {
	if p.deadLetter != nil {
		if err := p.deadLetter.WriteMessages(ctx, kafka.Message{
			Key:   msg.Key,
			Value: msg.Value,
			Time:  msg.Time,
		}); err != nil {
			return false, err
		}
	}
	p.registry.IncDeadLettered(id)
	log.Warn().Err(cause).
		Str("key", string(msg.Key)).
		Int64("offset", msg.Offset).
		Msg("message dead-lettered")
	return true, nil
}
