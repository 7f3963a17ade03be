package models

// Storage keys of the persisted collection.
const (
	StorageKeyCurrent = "compras_parceladas_data"
	StorageKeyLegacy  = "amortiza_ease_data"
)

// BackupFilePrefix prefixes exported snapshot file names.
const BackupFilePrefix = "compras_parceladas_backup"

// File permissions
const (
	PermissionDataFile   = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
