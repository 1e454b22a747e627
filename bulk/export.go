// Package bulk moves artists in and out of the service as CSV.
package bulk

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/repository"
)

// Columns is the CSV header written by exports and understood by imports.
var Columns = []string{
	"id",
	"name",
	"dob",
	"gender",
	"address",
	"first_release_year",
	"no_of_albums_released",
	"created_at",
	"updated_at",
}

const exportBatchSize = 200

// ArtistSource reads artists for export.
type ArtistSource interface {
	FindByID(ctx context.Context, id uint) (*models.Artist, error)
	EachBatch(ctx context.Context, batchSize int, fn func([]models.Artist) error) error
}

type Exporter struct {
	artists ArtistSource
}

func NewExporter(artists ArtistSource) *Exporter {
	return &Exporter{artists: artists}
}

// ExportAll writes every artist to w in id order. Rows are flushed batch by
// batch so the full table never sits in memory.
func (e *Exporter) ExportAll(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	err := e.artists.EachBatch(ctx, exportBatchSize, func(batch []models.Artist) error {
		for i := range batch {
			if err := cw.Write(record(&batch[i])); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ExportOne writes a single artist. The lookup happens before anything is
// written so a missing artist can still be reported as an error response.
func (e *Exporter) ExportOne(ctx context.Context, id uint, w io.Writer) error {
	a, err := e.artists.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Artist not found").Wrap(err)
	}
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	if err := cw.Write(record(a)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func record(a *models.Artist) []string {
	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		a.Name,
		a.Dob.String(),
		string(a.Gender),
		a.Address,
		strconv.Itoa(a.FirstReleaseYear),
		strconv.Itoa(a.NoOfAlbumsReleased),
		timestamp(a.CreatedAt),
		timestamp(a.UpdatedAt),
	}
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
