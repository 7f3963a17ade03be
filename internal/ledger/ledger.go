// Package ledger owns the authoritative collection of installment purchases.
// Every mutation validates its input, writes the whole next collection to
// the key-value store and only then makes it visible in memory.
package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"parcelas/internal/ledgererror"
	"parcelas/internal/logging"
	"parcelas/internal/models"
	"parcelas/internal/store"
)

// Store is the single source of truth for the purchase collection.
type Store struct {
	mu        sync.Mutex
	kv        store.KeyValueStore
	key       string
	legacyKey string
	newID     func() string
	logger    logging.Logger
	purchases models.Collection
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the id generator. The function must never return
// a value it has already returned in this process.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the logger used for mutations and recovery messages.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithKeys overrides the current and legacy storage keys.
func WithKeys(current, legacy string) Option {
	return func(s *Store) {
		if current != "" {
			s.key = current
		}
		s.legacyKey = legacy
	}
}

// New creates a Store over kv with an empty in-memory collection. Call Open
// to install the persisted collection.
func New(kv store.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		key:       models.StorageKeyCurrent,
		legacyKey: models.StorageKeyLegacy,
		newID:     uuid.NewString,
		logger:    logging.NewLogrusAdapter("info", "text"),
		purchases: models.Collection{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key the collection is written under.
func (s *Store) Key() string {
	return s.key
}

// Load reads the persisted collection without changing the in-memory state.
// A missing key yields an empty collection; undecodable data yields a
// *ledgererror.CorruptStateError.
func (s *Store) Load() (models.Collection, error) {
	c, _, err := s.load()
	return c, err
}

// load also reports whether the data came from the legacy key.
func (s *Store) load() (models.Collection, bool, error) {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, false, fmt.Errorf("error reading key '%s': %w", s.key, err)
	}
	fromLegacy := false
	key := s.key
	if !ok && s.legacyKey != "" {
		data, ok, err = s.kv.Get(s.legacyKey)
		if err != nil {
			return nil, false, fmt.Errorf("error reading key '%s': %w", s.legacyKey, err)
		}
		fromLegacy = ok
		key = s.legacyKey
	}
	if !ok {
		return models.Collection{}, false, nil
	}

	c, err := decodeCollection(data)
	if err != nil {
		return nil, false, &ledgererror.CorruptStateError{Key: key, Err: err}
	}
	return c, fromLegacy, nil
}

// Open loads the persisted collection and installs it as the in-memory
// state. Corrupt data is logged and replaced by an empty collection. Data
// found only under the legacy key is copied to the current key; the legacy
// entry is left in place.
func (s *Store) Open() models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.WithField(logging.FieldOperation, logging.OpLoad)

	c, fromLegacy, err := s.load()
	if err != nil {
		log.WithError(err).Warn("Could not load saved purchases, starting with an empty list")
		c = models.Collection{}
		fromLegacy = false
	}
	s.purchases = c

	if fromLegacy {
		log = s.logger.WithFields(
			logging.F(logging.FieldOperation, logging.OpMigrate),
			logging.F(logging.FieldStorageKey, s.key),
			logging.F(logging.FieldCount, len(c)),
		)
		if err := s.save(c); err != nil {
			log.WithError(err).Warn("Failed to copy legacy data to the current key")
		} else {
			log.Warn("Migrated purchases from legacy storage key")
		}
	}

	log.WithField(logging.FieldCount, len(c)).Debug("Purchases loaded")
	return c.Clone()
}

// Save overwrites the persisted collection with c. The in-memory state is
// not changed.
func (s *Store) Save(c models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(c)
}

func (s *Store) save(c models.Collection) error {
	if c == nil {
		c = models.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding purchases: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("error saving purchases under key '%s': %w", s.key, err)
	}
	return nil
}

// commit persists next and, on success, makes it the in-memory state.
func (s *Store) commit(next models.Collection) error {
	if err := s.save(next); err != nil {
		return err
	}
	s.purchases = next
	return nil
}

// Purchases returns a deep copy of the collection.
func (s *Store) Purchases() models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purchases.Clone()
}

// Purchase returns a copy of the purchase with the given id.
func (s *Store) Purchase(id string) (models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.purchases.Find(id)
	if i < 0 {
		return models.Purchase{}, &ledgererror.NotFoundError{Entity: ledgererror.EntityPurchase, ID: id}
	}
	return s.purchases[i].Clone(), nil
}

// Amortization returns the amortization amortizationID of purchase
// purchaseID.
func (s *Store) Amortization(purchaseID, amortizationID string) (models.Amortization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi, ai, err := s.locateAmortization(purchaseID, amortizationID)
	if err != nil {
		return models.Amortization{}, err
	}
	return s.purchases[pi].Amortizations[ai], nil
}

func (s *Store) locateAmortization(purchaseID, amortizationID string) (int, int, error) {
	pi := s.purchases.Find(purchaseID)
	if pi < 0 {
		return -1, -1, &ledgererror.NotFoundError{Entity: ledgererror.EntityPurchase, ID: purchaseID}
	}
	ai := s.purchases[pi].FindAmortization(amortizationID)
	if ai < 0 {
		return -1, -1, &ledgererror.NotFoundError{Entity: ledgererror.EntityAmortization, ID: amortizationID}
	}
	return pi, ai, nil
}

// decodeCollection requires a top-level JSON array of purchase records.
func decodeCollection(data []byte) (models.Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("top-level value is not an array")
	}
	var records []*models.Purchase
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	c := make(models.Collection, 0, len(records))
	for i, p := range records {
		if p == nil {
			return nil, fmt.Errorf("element %d is null", i)
		}
		if p.Amortizations == nil {
			p.Amortizations = []models.Amortization{}
		}
		c = append(c, *p)
	}
	return c, nil
}
