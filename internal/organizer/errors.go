package organizer

import "brandsort/internal/services"

// Sentinels re-exported so callers can classify organizer failures without
// importing services directly.
var (
	ErrRootNotFound = services.ErrRootNotFound
	ErrMove         = services.ErrMove
	ErrRemove       = services.ErrRemove
)
