// Package db exposes one uniform prepared-statement contract over
// heterogeneous SQL backends.
//
// Two backends implement the [DB] contract: an embedded SQLite store and a
// networked PostgreSQL store. Data-access code is written once against [DB]
// and the backend is swapped via configuration; shared call sites never
// branch on backend identity.
//
// # Statements
//
// A [Statement] pairs immutable query text with a rebindable positional
// parameter list. Statement text uses '?' as the generic positional
// placeholder; the network backend rewrites it to native $1..$n syntax on the
// way out (see [TranslatePlaceholders]). Text already written in native
// syntax contains no '?' and passes through unchanged, so legacy callers
// written for one backend run unmodified against the other.
//
// # Execution strategies
//
// Four result-shaping operations share the backend's execution primitives:
//
//   - [Statement.One] / [Statement.OneValue] : first row (or one field of it),
//     with a not-found return instead of an error
//   - [Statement.Write] : success flag, rows changed, last insert id
//   - [Statement.All] : success flag plus the full row slice
//   - [Statement.Exec] : generic execution, alias of Write
//
// Standalone strategies never return errors; every failure is logged and
// converted into the uniform [Result] shape (or a not-found return).
//
// # Batches
//
// [DB.Batch] runs an ordered list of Statements inside one transaction on a
// single pooled connection. Either every statement commits together or the
// whole batch rolls back and the first failure is returned; no partial
// results are produced. Once the transaction has begun it runs to completion
// regardless of caller state.
//
// # Connections
//
// The SQLite backend owns a connection handle per adapter. The PostgreSQL
// backend shares one lazily-created, process-wide pool built from the
// connection string in the environment (KINO_DATABASE_URL or DATABASE_URL);
// a missing string surfaces shared.ErrMissingDSN at first use. [ResetPool]
// discards the pool for test isolation.
package db
