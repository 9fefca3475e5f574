package wikidata

import (
	"context"
	"errors"
	"fmt"
)

// UploadResult records the outcome for a single identifier.
type UploadResult struct {
	IDType     string `json:"id_type"`
	Source     string `json:"source"`
	Identifier string `json:"identifier"`
	QID        string `json:"qid,omitempty"`
	Created    bool   `json:"created"`           // a new item was created
	Skipped    bool   `json:"skipped,omitempty"` // already in the ledger
	Err        string `json:"error,omitempty"`
}

// Ledger records identifiers that have already been uploaded so repeated
// runs are idempotent.
type Ledger interface {
	Seen(idType, identifier string) (bool, error)
	Record(idType, identifier, qid string) error
}

// EnsurePublications makes sure an item exists for every identifier,
// creating the missing ones. source names the catalog the identifiers came
// from (crossref, europepmc, ...) and is carried through to the results.
// Per-identifier failures are reported in the results rather than aborting
// the batch; only context cancellation stops the loop early.
func (c *Client) EnsurePublications(ctx context.Context, idType, source string, identifiers []string, ledger Ledger) []UploadResult {
	results := make([]UploadResult, 0, len(identifiers))

	for _, identifier := range identifiers {
		res := UploadResult{IDType: idType, Source: source, Identifier: identifier}

		if ledger != nil {
			if seen, err := ledger.Seen(idType, identifier); err == nil && seen {
				res.Skipped = true
				results = append(results, res)
				continue
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			res.Err = err.Error()
			results = append(results, res)
			break
		}

		qid, err := c.FindPublication(ctx, idType, identifier)
		switch {
		case err == nil:
			res.QID = qid
		case errors.Is(err, ErrNotFound):
			qid, err = c.CreatePublication(ctx, idType, identifier)
			if err != nil {
				res.Err = err.Error()
			} else {
				res.QID = qid
				res.Created = true
			}
		default:
			res.Err = err.Error()
		}

		if res.Err == "" && ledger != nil {
			if err := ledger.Record(idType, identifier, res.QID); err != nil {
				res.Err = fmt.Sprintf("recording upload: %v", err)
			}
		}
		results = append(results, res)
	}

	return results
}
