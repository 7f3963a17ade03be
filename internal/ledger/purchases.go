package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"parcelas/internal/ledgererror"
	"parcelas/internal/logging"
	"parcelas/internal/models"
)

// validatePurchase reports the first invalid field in the order
// name, totalValue, installments.
func validatePurchase(f models.PurchaseFields) error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return &ledgererror.ValidationError{Entity: ledgererror.EntityPurchase, Field: ledgererror.FieldName, Reason: "must not be empty"}
	case !f.TotalValue.IsPositive():
		return &ledgererror.ValidationError{Entity: ledgererror.EntityPurchase, Field: ledgererror.FieldTotalValue, Reason: "must be greater than zero"}
	case f.Installments < 1:
		return &ledgererror.ValidationError{Entity: ledgererror.EntityPurchase, Field: ledgererror.FieldInstallments, Reason: "must be at least 1"}
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ledgererror.ValidationError{Entity: ledgererror.EntityAmortization, Field: ledgererror.FieldAmount, Reason: "must be greater than zero"}
	}
	return nil
}

// CreatePurchase validates f and appends a new purchase with a fresh id and
// no amortizations.
func (s *Store) CreatePurchase(f models.PurchaseFields) (models.Purchase, error) {
	if err := validatePurchase(f); err != nil {
		return models.Purchase{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Purchase{ID: s.newID(), Amortizations: []models.Amortization{}}
	p.Apply(f)

	next := append(s.purchases.Clone(), p)
	if err := s.commit(next); err != nil {
		return models.Purchase{}, err
	}

	s.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpCreatePurchase),
		logging.F(logging.FieldPurchaseID, p.ID),
		logging.F(logging.FieldPurchaseName, p.Name),
	).Info("Purchase created")
	return p.Clone(), nil
}

// UpdatePurchase replaces the editable fields of purchase id. Its id and
// amortizations are preserved.
func (s *Store) UpdatePurchase(id string, f models.PurchaseFields) (models.Purchase, error) {
	if err := validatePurchase(f); err != nil {
		return models.Purchase{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.purchases.Find(id)
	if i < 0 {
		return models.Purchase{}, &ledgererror.NotFoundError{Entity: ledgererror.EntityPurchase, ID: id}
	}

	next := s.purchases.Clone()
	next[i].Apply(f)
	if err := s.commit(next); err != nil {
		return models.Purchase{}, err
	}

	s.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpUpdatePurchase),
		logging.F(logging.FieldPurchaseID, id),
	).Info("Purchase updated")
	return next[i].Clone(), nil
}

// DeletePurchase removes purchase id together with its amortizations. An
// unknown id is not an error.
func (s *Store) DeletePurchase(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.purchases.Find(id)
	if i < 0 {
		s.logger.WithField(logging.FieldPurchaseID, id).Debug("Delete of unknown purchase ignored")
		return nil
	}

	next := make(models.Collection, 0, len(s.purchases)-1)
	for _, p := range s.purchases {
		if p.ID != id {
			next = append(next, p.Clone())
		}
	}
	if err := s.commit(next); err != nil {
		return err
	}

	s.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpDeletePurchase),
		logging.F(logging.FieldPurchaseID, id),
	).Info("Purchase deleted")
	return nil
}

// AddAmortization appends a new amortization to purchase purchaseID.
func (s *Store) AddAmortization(purchaseID string, amount decimal.Decimal, date models.Date) (models.Amortization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.purchases.Find(purchaseID)
	if i < 0 {
		return models.Amortization{}, &ledgererror.NotFoundError{Entity: ledgererror.EntityPurchase, ID: purchaseID}
	}
	if err := validateAmount(amount); err != nil {
		return models.Amortization{}, err
	}

	a := models.Amortization{ID: s.newID(), Amount: amount, Date: date}
	next := s.purchases.Clone()
	next[i].Amortizations = append(next[i].Amortizations, a)
	if err := s.commit(next); err != nil {
		return models.Amortization{}, err
	}

	s.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpAddAmortization),
		logging.F(logging.FieldPurchaseID, purchaseID),
		logging.F(logging.FieldAmortizationID, a.ID),
		logging.F(logging.FieldAmount, amount.String()),
	).Info("Amortization added")
	return a, nil
}

// UpdateAmortization replaces amount and date of an existing amortization,
// keeping its id and position.
func (s *Store) UpdateAmortization(purchaseID, amortizationID string, amount decimal.Decimal, date models.Date) (models.Amortization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi, ai, err := s.locateAmortization(purchaseID, amortizationID)
	if err != nil {
		return models.Amortization{}, err
	}
	if err := validateAmount(amount); err != nil {
		return models.Amortization{}, err
	}

	next := s.purchases.Clone()
	next[pi].Amortizations[ai].Amount = amount
	next[pi].Amortizations[ai].Date = date
	if err := s.commit(next); err != nil {
		return models.Amortization{}, err
	}

	s.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpUpdateAmortization),
		logging.F(logging.FieldPurchaseID, purchaseID),
		logging.F(logging.FieldAmortizationID, amortizationID),
		logging.F(logging.FieldAmount, amount.String()),
	).Info("Amortization updated")
	return next[pi].Amortizations[ai], nil
}
