package domain

import "errors"

// ErrValidation is returned when a request is rejected before any store call is made.
var ErrValidation = errors.New("validation failed")

// ErrTransientRemote is returned when the transcoding service times out, fails or answers garbage.
var ErrTransientRemote = errors.New("transcoding service unavailable")

// ErrMissingCredential is returned when no valid session credential reaches the transcoding service.
var ErrMissingCredential = errors.New("missing or rejected transcoder credential")

// ErrStorageWrite is returned when a blob put, delete or move fails.
var ErrStorageWrite = errors.New("blob store write failed")

// ErrStorageRead is returned when a blob cannot be read back.
var ErrStorageRead = errors.New("blob store read failed")

// ErrCatalogWrite is returned when an asset row cannot be inserted, updated or deleted.
var ErrCatalogWrite = errors.New("catalog write failed")

// ErrOrphanedObject marks a failed compensation: one store holds an entry the other does not.
var ErrOrphanedObject = errors.New("orphaned object")

// ErrUnreachable is returned when a store cannot be reached at all.
var ErrUnreachable = errors.New("store unreachable")

// ErrNotFound is returned when an asset or blob does not exist.
var ErrNotFound = errors.New("not found")
