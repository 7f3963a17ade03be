// Package container provides dependency injection for the parcelas
// application. It creates the logger, the key-value store, the ledger and
// the report generator from a Config and hands them out through getters.
package container

import (
	"fmt"

	"parcelas/internal/config"
	"parcelas/internal/ledger"
	"parcelas/internal/logging"
	"parcelas/internal/report"
	"parcelas/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	kv       store.KeyValueStore
	ledger   *ledger.Store
	reporter *report.Generator
}

// Option customises container construction.
type Option func(*options)

type options struct {
	logger logging.Logger
	kv     store.KeyValueStore
	ledger []ledger.Option
}

// WithLogger uses logger instead of one built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore uses kv instead of the configured backend.
func WithStore(kv store.KeyValueStore) Option {
	return func(o *options) { o.kv = kv }
}

// WithLedgerOptions passes extra options to the ledger.
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(o *options) { o.ledger = append(o.ledger, opts...) }
}

// NewContainer creates and wires all application dependencies. The ledger
// is opened, so the persisted purchases are loaded when it returns.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	}

	kv := o.kv
	if kv == nil {
		var err error
		kv, err = store.New(store.Options{
			Backend:    cfg.Storage.Backend,
			Directory:  cfg.Storage.Directory,
			SQLitePath: cfg.SQLitePath(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create storage backend: %w", err)
		}
	}

	ledgerOpts := append([]ledger.Option{
		ledger.WithLogger(logger.WithField(logging.FieldComponent, "ledger")),
		ledger.WithKeys(cfg.Storage.Key, cfg.Storage.LegacyKey),
	}, o.ledger...)
	l := ledger.New(kv, ledgerOpts...)
	purchases := l.Open()

	delimiter := ','
	if d := []rune(cfg.Report.Delimiter); len(d) > 0 {
		delimiter = d[0]
	}
	reporter := report.NewGenerator(logger, delimiter, cfg.Display.Currency)

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Storage.Backend),
		logging.F(logging.FieldStorageKey, l.Key()),
		logging.F(logging.FieldCount, len(purchases)))

	return &Container{
		logger:   logger,
		config:   cfg,
		kv:       kv,
		ledger:   l,
		reporter: reporter,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the key-value backend.
func (c *Container) GetStore() store.KeyValueStore {
	return c.kv
}

// GetLedger returns the opened ledger.
func (c *Container) GetLedger() *ledger.Store {
	return c.ledger
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reporter
}

// Close releases the storage backend.
func (c *Container) Close() error {
	if err := c.kv.Close(); err != nil {
		return fmt.Errorf("failed to close storage backend: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
