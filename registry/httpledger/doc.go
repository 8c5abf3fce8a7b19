// Package httpledger adapts the Ledger contract onto the registry
// service's HTTP API.
//
// All wire parsing lives here: responses are decoded into typed values
// and mapped onto the registry package's sentinel errors, so no caller
// ever pattern-matches response text. In particular a duplicate key is
// recognized only by the ledger's structured already_recorded status; a
// bare conflict is a rejection, never silently treated as a duplicate.
package httpledger
