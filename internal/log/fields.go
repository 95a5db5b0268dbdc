package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldRoomID      = "room_id"
	FieldRoomName    = "room_name"
	FieldItemID      = "item_id"
	FieldItemName    = "item_name"
	FieldCategory    = "category"
	FieldStatus      = "status"
	FieldAmountCents = "amount_cents"
	FieldCount       = "count"
	FieldBackend     = "backend"
	FieldSnapshotKey = "snapshot_key"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStore     = "store"
	ComponentStorage   = "storage"
	ComponentBackend   = "backend"
	ComponentCache     = "cache"
	ComponentExchange  = "exchange"
	ComponentBackup    = "backup"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpDuplicate = "duplicate"
	OpBulk      = "bulk"
	OpLoad      = "load"
	OpSave      = "save"
	OpSeed      = "seed"
	OpImport    = "import"
	OpExport    = "export"
	OpBackup    = "backup"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
