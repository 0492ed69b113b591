// Package storage persists laid-out charts.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON file per chart, for the CLI and single-node servers
//   - [MongoStore]: a MongoDB collection, for multi-instance API deployments
//
// Records are keyed by a UUID assigned on first save:
//
//	id, err := store.Save(ctx, &storage.Record{Name: "Doe family", Chart: c, Layout: l})
//	rec, err := store.Get(ctx, id)
//
// A missing record is reported as an error with code CHART_NOT_FOUND.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/errors"
)

// Record is a stored chart together with its layout.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	Chart     chart.Chart  `json:"chart" bson:"chart"`
	Layout    chart.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

// Summary is the listing form of a Record.
type Summary struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name,omitempty" bson:"name,omitempty"`
	Individuals int       `json:"individuals" bson:"individuals"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Summary returns the listing form of r.
func (r *Record) Summary() Summary {
	return Summary{
		ID:          r.ID,
		Name:        r.Name,
		Individuals: len(r.Chart.Individuals),
		CreatedAt:   r.CreatedAt,
	}
}

// Store is the interface for chart storage backends.
type Store interface {
	// Save stores rec, assigning an ID and creation time when they are unset,
	// and returns the ID. Saving an existing ID replaces the record.
	Save(ctx context.Context, rec *Record) (string, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns summaries of all records, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// prepare validates rec and fills in its ID and creation time.
func prepare(rec *Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "record cannot be nil")
	}
	if err := errors.ValidateChartName(rec.Name); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if err := errors.ValidateChartID(rec.ID); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}
