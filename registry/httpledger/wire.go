package httpledger

import (
	"encoding/json"
	"io"
)

// statusAlreadyRecorded is the ledger's structured duplicate-key signal.
const statusAlreadyRecorded = "already_recorded"

// putResponse is the ledger's acknowledgment payload for record writes.
type putResponse struct {
	Status    string `json:"status"`
	ReceiptID string `json:"receiptId"`
	Error     string `json:"error"`
}

// statsResponse is the payload of GET /v1/stats.
type statsResponse struct {
	Count int `json:"count"`
}

// listResponse is the payload of GET /v1/records: every recorded
// revision id in insertion order.
type listResponse struct {
	RevisionIDs []string `json:"revisionIds"`
}

// decodeErrorDetail extracts the error field from a rejection body,
// falling back to the raw text for non-JSON responses.
func decodeErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}
	var body putResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return string(raw)
}
