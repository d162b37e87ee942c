package sessionstore

import "errors"

var (
	// ErrPersist indicates the store could not write the session pair.
	ErrPersist = errors.New("sessionstore.persist_failed")

	// ErrLoad indicates the store could not read the session pair.
	ErrLoad = errors.New("sessionstore.load_failed")
)
