// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver errors.
package repository

import "errors"

// ErrNotFound is returned when an id does not resolve to a stored record.
// Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource whose factory they do not own. Handlers translate this into
// HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registering an email that is already
// present. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrFactoryExists is returned when a user who already owns a factory tries
// to create another one. Handlers translate this into HTTP 400, preserving
// the external contract.
var ErrFactoryExists = errors.New("user already has a factory")

// ErrStockContention is returned when the stock compare-and-swap loses the
// version race too many times in a row. The purchase/usage event is already
// persisted by then; callers log and move on.
var ErrStockContention = errors.New("stock update contention")
