package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/messaging"
)

// Config holds the NATS publisher settings
type Config struct {
	URL           string
	ClientName    string
	StreamName    string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// NATSPublisher publishes committed ledger entries to a JetStream stream
type NATSPublisher struct {
	config Config
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger coreport.Logger
}

var _ messaging.CoinEventPublisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to NATS and makes sure the ledger stream exists
func NewNATSPublisher(config Config, logger coreport.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name(config.ClientName),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected with error", map[string]any{"error": err.Error()})
				return
			}
			logger.Warn("NATS disconnected", nil)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", map[string]any{"url": nc.ConnectedUrlRedacted()})
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &NATSPublisher{config: config, nc: nc, js: js, logger: logger}
	if err := p.ensureStream(); err != nil {
		nc.Close()
		return nil, err
	}

	logger.Info("Connected to NATS with JetStream", map[string]any{
		"stream":  config.StreamName,
		"subject": config.SubjectPrefix + ".*",
	})
	return p, nil
}

func (p *NATSPublisher) ensureStream() error {
	_, err := p.js.StreamInfo(p.config.StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream %s: %w", p.config.StreamName, err)
	}

	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:        p.config.StreamName,
		Subjects:    []string{p.config.SubjectPrefix + ".*"},
		Retention:   nats.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Storage:     nats.FileStorage,
		Replicas:    1,
		Description: "Committed coin ledger entries",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", p.config.StreamName, err)
	}

	p.logger.Info("Created JetStream stream", map[string]any{"stream": p.config.StreamName})
	return nil
}

// PublishLedgerEntries publishes each entry, deduplicated by its ledger id
func (p *NATSPublisher) PublishLedgerEntries(ctx context.Context, entries []*entity.CoinLedgerEntry) error {
	var errs []error
	for _, entry := range entries {
		data, err := encodeEntry(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode entry %s: %w", entry.ID, err))
			continue
		}

		subject := Subject(p.config.SubjectPrefix, entry)
		if _, err := p.js.Publish(subject, data, nats.Context(ctx), nats.MsgId(entry.ID.String())); err != nil {
			errs = append(errs, fmt.Errorf("publish to %s: %w", subject, err))
			continue
		}

		p.logger.Debug("Published ledger entry", map[string]any{
			"subject":  subject,
			"entry_id": entry.ID.String(),
		})
	}
	return errors.Join(errs...)
}

// Close flushes pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	if p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}
