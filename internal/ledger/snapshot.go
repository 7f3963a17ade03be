package ledger

import (
	"encoding/json"
	"fmt"

	"parcelas/internal/ledgererror"
	"parcelas/internal/logging"
	"parcelas/internal/models"
)

// ExportSnapshot returns the current collection as indented JSON, in the
// same layout the collection is persisted in.
func (s *Store) ExportSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.purchases, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}
	s.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpExport),
		logging.F(logging.FieldCount, len(s.purchases)),
	).Debug("Snapshot exported")
	return data, nil
}

// ImportSnapshot replaces the whole collection with the purchases in data
// and persists it. Anything but a JSON array of purchases is rejected with
// a *ledgererror.ImportError and the current collection is kept.
func (s *Store) ImportSnapshot(data []byte) (models.Collection, error) {
	c, err := decodeCollection(data)
	if err != nil {
		return nil, &ledgererror.ImportError{Reason: "snapshot must be a JSON array of purchases", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(c); err != nil {
		return nil, err
	}

	s.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpImport),
		logging.F(logging.FieldCount, len(c)),
	).Info("Snapshot imported")
	return c.Clone(), nil
}
