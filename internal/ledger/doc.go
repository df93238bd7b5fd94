// SPDX-License-Identifier: EPL-2.0

// Package ledger journals archive moves in a SQLite database.
//
// Every original moved into an obsolete archive folder is recorded with the
// run that moved it, so a session can be audited or restored by hand later.
// The database is opened with WAL journaling and a busy timeout. The schema is
// versioned and an unexpected version fails Open with ErrSchemaMismatch.
package ledger
