// Package registry submits attestation records to an append-only ledger
// and queries them back.
//
// The client owns all retry, backoff and timeout policy; the ledger is
// an external collaborator reached through the Ledger interface. See the
// httpledger subpackage for the wire adapter and memledger for an
// in-memory implementation.
package registry
