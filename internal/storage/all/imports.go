// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: a blank import causes each backend's
// init function to run and register its factory, making the "sqlite" and
// "postgres" kinds available to storage.New. Binaries that only need one
// backend can import that backend's package directly instead.
package all

import (
	_ "salespipe/internal/storage/postgres"
	_ "salespipe/internal/storage/sqlite"
)
