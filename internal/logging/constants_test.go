package logging

import (
	"testing"
)

func TestConstants(t *testing.T) {
	for _, c := range []string{
		FieldComponent, FieldOperation, FieldPurchaseID, FieldAmortizationID,
		FieldStorageKey, FieldBackend, FieldCount, FieldFile, FieldFormat,
	} {
		if c == "" {
			t.Error("field constants should not be empty")
		}
	}
	if OpCreatePurchase == OpUpdatePurchase {
		t.Error("operation names should be distinct")
	}
}
