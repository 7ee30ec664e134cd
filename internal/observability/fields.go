package observability

import "go.uber.org/zap"

// Field constructor aliases so callers outside the HTTP layer do not
// need a direct zap import.
//
//nolint:gochecknoglobals // Aliases, not mutable state
var (
	String  = zap.String
	Int     = zap.Int
	Float64 = zap.Float64
	Bool    = zap.Bool
	Error   = zap.Error
)
