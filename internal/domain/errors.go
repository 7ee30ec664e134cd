package domain

import "errors"

// ErrCacheMiss indicates that no cached ranking exists for the
// requested (category, mode) key.
var ErrCacheMiss = errors.New("cache miss")
