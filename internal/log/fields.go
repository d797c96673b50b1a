package log

// Canonical field name constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"

	// Asset fields
	FieldAssetID    = "asset_id"
	FieldFormat     = "format"
	FieldWidth      = "width"
	FieldHeight     = "height"
	FieldOutputPath = "output_path"
	FieldHash       = "hash"
	FieldLightID    = "light_id"
	FieldDarkID     = "dark_id"

	// Document fields
	FieldPath     = "path"
	FieldDuration = "duration"
	FieldCount    = "count"
	FieldScheme   = "scheme"
	FieldPID      = "pid"
	FieldWorkers  = "workers"
)
