package logging

// Standardized field names for structured logging.
const (
	FieldComponent      = "component"
	FieldOperation      = "operation"
	FieldPurchaseID     = "purchase_id"
	FieldAmortizationID = "amortization_id"
	FieldPurchaseName   = "purchase_name"
	FieldAmount         = "amount"
	FieldStorageKey     = "storage_key"
	FieldBackend        = "backend"
	FieldCount          = "count"
	FieldFile           = "file_path"
	FieldFormat         = "format"
	FieldError          = "error"
	FieldDuration       = "duration_ms"
)

// Operation names logged under FieldOperation.
const (
	OpLoad               = "load"
	OpSave               = "save"
	OpMigrate            = "migrate"
	OpCreatePurchase     = "create_purchase"
	OpUpdatePurchase     = "update_purchase"
	OpDeletePurchase     = "delete_purchase"
	OpAddAmortization    = "add_amortization"
	OpUpdateAmortization = "update_amortization"
	OpExport             = "export"
	OpImport             = "import"
	OpReport             = "report"
)
