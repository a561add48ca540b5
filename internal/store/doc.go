// Package store contains the data-access code for kino's domain: user
// accounts, favorites and watch history.
//
// Every store is written once against the db.DB contract and works unchanged
// on either backend. Ids are generated client-side (uuid v4) so no store ever
// depends on a backend-generated insert id, and timestamps are epoch
// milliseconds so rows scan identically everywhere.
package store
