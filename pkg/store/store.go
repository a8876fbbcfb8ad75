// Package store archives analysis reports so they can be fetched again by ID.
//
// Two backends implement [Store]:
//
//   - [MemoryStore]: process-local, for tests and single-instance servers
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Save assigns a random UUID and a creation time when the report has none.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/relabel/pkg/report"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store persists reports.
type Store interface {
	// Save stores r and returns its ID. r.ID and r.CreatedAt are filled in
	// when empty.
	Save(ctx context.Context, r *report.Report) (string, error)
	// Get returns the report with the given ID or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*report.Report, error)
	// List returns up to limit reports, newest first.
	List(ctx context.Context, limit int) ([]*report.Report, error)
	// Delete removes a report. Deleting a missing report returns NOT_FOUND.
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// prepare fills in the ID and creation time.
func prepare(r *report.Report, now time.Time) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC()
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
