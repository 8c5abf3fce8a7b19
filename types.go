package gitseal

import (
	"github.com/gitseal/gitseal/registry"
	"github.com/gitseal/gitseal/verify"
)

// Record is an attestation record as stored in the ledger.
type Record = registry.Record

// Receipt acknowledges an accepted submission.
type Receipt = registry.Receipt

// SubmitResult reports what a submission did.
type SubmitResult = registry.SubmitResult

// VerifyResult is the outcome of verifying one revision.
type VerifyResult = verify.Result
