package devtools

import "errors"

// ErrEmptyName is returned when a store is exposed without a name.
var ErrEmptyName = errors.New("vstore: store name is empty")

// ErrDuplicateStore is returned when a name is already exposed.
var ErrDuplicateStore = errors.New("vstore: store already exposed")

// ErrStoreNotFound is returned for unknown store names.
var ErrStoreNotFound = errors.New("vstore: store not found")

// ErrClosed is returned when exposing a store on a closed inspector.
var ErrClosed = errors.New("vstore: inspector closed")
