package bulk

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/validation"
)

// Row outcomes reported by Import.
const (
	StatusCreated = "created"
	StatusFailed  = "failed"
)

// requiredColumns must be present in an import header. Other columns such
// as id and the timestamps are ignored.
var requiredColumns = []string{
	"name",
	"dob",
	"gender",
	"address",
	"first_release_year",
	"no_of_albums_released",
}

// ArtistCreator inserts one validated artist.
type ArtistCreator interface {
	Create(ctx context.Context, in *validation.ArtistCreate) (*models.Artist, error)
}

// RowRecorder counts import outcomes.
type RowRecorder interface {
	ImportRow(status string)
}

// RowResult is the outcome of one data row. Row is the line number in the
// uploaded file, so the header is line 1.
type RowResult struct {
	Row    int    `json:"row"`
	Status string `json:"status"`
	ID     uint   `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Totals struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

type Report struct {
	Totals Totals      `json:"totals"`
	Rows   []RowResult `json:"rows"`
}

type Importer struct {
	artists ArtistCreator
	maxRows int
	rec     RowRecorder
	log     *zap.Logger
}

// NewImporter builds an importer that rejects files with more than maxRows
// data rows. rec may be nil.
func NewImporter(artists ArtistCreator, maxRows int, rec RowRecorder, log *zap.Logger) *Importer {
	return &Importer{artists: artists, maxRows: maxRows, rec: rec, log: log.Named("import")}
}

// Import reads the whole file, checks the header and row cap, then creates
// each row independently. A failing row is reported and does not stop the
// rows after it. Errors returned are about the file as a whole.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.BadRequest("CSV file is empty")
	}
	if err != nil {
		return nil, apperr.BadRequest("Malformed CSV header").Wrap(err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	type dataRow struct {
		line int
		rec  []string
	}
	var rows []dataRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.BadRequest(fmt.Sprintf("Malformed CSV: %v", err)).Wrap(err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, dataRow{line: line, rec: rec})
		if im.maxRows > 0 && len(rows) > im.maxRows {
			return nil, apperr.BadRequest(fmt.Sprintf("CSV file exceeds the limit of %d rows", im.maxRows))
		}
	}

	report := &Report{Rows: make([]RowResult, 0, len(rows))}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := im.importRow(ctx, row.line, row.rec, index, len(header))
		report.Rows = append(report.Rows, res)
		report.Totals.Total++
		if res.Status == StatusCreated {
			report.Totals.Created++
		} else {
			report.Totals.Failed++
		}
		if im.rec != nil {
			im.rec.ImportRow(res.Status)
		}
	}

	im.log.Info("artist import finished",
		zap.Int("total", report.Totals.Total),
		zap.Int("created", report.Totals.Created),
		zap.Int("failed", report.Totals.Failed),
	)
	return report, nil
}

func (im *Importer) importRow(ctx context.Context, line int, rec []string, index map[string]int, width int) RowResult {
	fail := func(msg string) RowResult {
		return RowResult{Row: line, Status: StatusFailed, Error: msg}
	}
	if len(rec) != width {
		return fail(fmt.Sprintf("Expected %d columns, got %d", width, len(rec)))
	}

	get := func(col string) string { return strings.TrimSpace(rec[index[col]]) }
	in := &validation.ArtistCreate{
		Name:    get("name"),
		Dob:     get("dob"),
		Gender:  get("gender"),
		Address: get("address"),
	}
	var err error
	if in.FirstReleaseYear, err = optionalInt(get("first_release_year")); err != nil {
		return fail("Invalid year")
	}
	if in.NoOfAlbumsReleased, err = optionalInt(get("no_of_albums_released")); err != nil {
		return fail("Number of albums released must be a whole number")
	}

	a, err := im.artists.Create(ctx, in)
	if err != nil {
		appErr := apperr.From(err)
		if appErr.Kind == apperr.KindInternal {
			im.log.Error("import row", zap.Int("row", line), zap.Error(err))
		}
		return fail(appErr.Message)
	}
	return RowResult{Row: line, Status: StatusCreated, ID: a.ID}
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperr.BadRequest("CSV is missing required columns: " + strings.Join(missing, ", "))
	}
	return index, nil
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
