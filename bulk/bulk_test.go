package bulk

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/repository"
	"github.com/faizan/roster/services"
	"github.com/faizan/roster/testutil"
	"github.com/faizan/roster/validation"
)

type countingRecorder map[string]int

func (c countingRecorder) ImportRow(status string) { c[status]++ }

type harness struct {
	db       *gorm.DB
	repo     *repository.ArtistRepository
	service  *services.ArtistService
	exporter *Exporter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repository.NewArtistRepository(db)
	return &harness{
		db:       db,
		repo:     repo,
		service:  services.NewArtistService(repo, validation.New(), zap.NewNop()),
		exporter: NewExporter(repo),
	}
}

func (h *harness) importer(maxRows int, rec RowRecorder) *Importer {
	return NewImporter(h.service, maxRows, rec, zap.NewNop())
}

func readCSV(t *testing.T, s string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportAllQuotesAndOrders(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tricky := testutil.Artist(`Earth, Wind & "Fire"`)
	tricky.Address = "Line one\nLine two"
	require.NoError(t, h.repo.Create(ctx, tricky))
	testutil.SeedArtists(t, h.db, 3)

	var buf bytes.Buffer
	require.NoError(t, h.exporter.ExportAll(ctx, &buf))

	assert.Contains(t, buf.String(), `"Earth, Wind & ""Fire"""`)
	records := readCSV(t, buf.String())
	require.Len(t, records, 5)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, `Earth, Wind & "Fire"`, records[1][1])
	assert.Equal(t, "Line one\nLine two", records[1][4])
	assert.Equal(t, "Artist 03", records[4][1])

	_, err := time.Parse(time.RFC3339, records[1][7])
	assert.NoError(t, err)
}

func TestExportEmptyTableHasHeaderOnly(t *testing.T) {
	h := newHarness(t)
	var buf bytes.Buffer
	require.NoError(t, h.exporter.ExportAll(context.Background(), &buf))
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestExportOne(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := testutil.Artist("Solo")
	require.NoError(t, h.repo.Create(ctx, a))

	var buf bytes.Buffer
	require.NoError(t, h.exporter.ExportOne(ctx, a.ID, &buf))
	records := readCSV(t, buf.String())
	require.Len(t, records, 2)
	assert.Equal(t, "Solo", records[1][1])

	buf.Reset()
	err := h.exporter.ExportOne(ctx, 999, &buf)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Zero(t, buf.Len())
}

func TestRoundTrip(t *testing.T) {
	src := newHarness(t)
	ctx := context.Background()
	for _, name := range []string{"Nina", "Otis, Jr.", `The "Band"`} {
		year, albums := 1960, 4
		_, err := src.service.Create(ctx, &validation.ArtistCreate{
			Name: name, Dob: "1940-05-06", Gender: "O", Address: "Memphis, TN",
			FirstReleaseYear: &year, NoOfAlbumsReleased: &albums,
		})
		require.NoError(t, err)
	}
	var buf bytes.Buffer
	require.NoError(t, src.exporter.ExportAll(ctx, &buf))

	dst := newHarness(t)
	report, err := dst.importer(100, nil).Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, Totals{Total: 3, Created: 3}, report.Totals)

	var before, after []models.Artist
	collect := func(into *[]models.Artist) func([]models.Artist) error {
		return func(batch []models.Artist) error {
			*into = append(*into, batch...)
			return nil
		}
	}
	require.NoError(t, src.repo.EachBatch(ctx, 10, collect(&before)))
	require.NoError(t, dst.repo.EachBatch(ctx, 10, collect(&after)))
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Name, after[i].Name)
		assert.Equal(t, before[i].Dob.String(), after[i].Dob.String())
		assert.Equal(t, before[i].Gender, after[i].Gender)
		assert.Equal(t, before[i].Address, after[i].Address)
		assert.Equal(t, before[i].FirstReleaseYear, after[i].FirstReleaseYear)
		assert.Equal(t, before[i].NoOfAlbumsReleased, after[i].NoOfAlbumsReleased)
	}
}

func TestImportReportsRowFailures(t *testing.T) {
	h := newHarness(t)
	rec := countingRecorder{}
	body := strings.Join([]string{
		"name,dob,gender,address,first_release_year,no_of_albums_released,extra",
		"Alpha,1980-01-01,M,Somewhere,2001,3,x",
		"Alpha,1980-01-01,M,Somewhere,2001,3,x",
		"Beta,not-a-date,F,Elsewhere,2005,1,x",
		",,,,,,",
		"Gamma,1985-02-02,F,Nowhere,nineteen,1,x",
		"Delta,1990-03-03,O,Here,2010,2,x",
	}, "\n")

	report, err := h.importer(10, rec).Import(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, Totals{Total: 5, Created: 2, Failed: 3}, report.Totals)
	require.Len(t, report.Rows, 5)

	assert.Equal(t, StatusCreated, report.Rows[0].Status)
	assert.Equal(t, 2, report.Rows[0].Row)
	assert.NotZero(t, report.Rows[0].ID)

	assert.Equal(t, RowResult{Row: 3, Status: StatusFailed, Error: "Artist already exists"}, report.Rows[1])
	assert.Equal(t, "Invalid date format for dob", report.Rows[2].Error)
	assert.Equal(t, RowResult{Row: 6, Status: StatusFailed, Error: "Invalid year"}, report.Rows[3])
	assert.Equal(t, 7, report.Rows[4].Row)
	assert.Equal(t, StatusCreated, report.Rows[4].Status)

	assert.Equal(t, countingRecorder{StatusCreated: 2, StatusFailed: 3}, rec)
}

func TestImportRejectsWholeFile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.importer(10, nil).Import(ctx, strings.NewReader(""))
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	_, err = h.importer(10, nil).Import(ctx, strings.NewReader("name,dob\nX,1990-01-01\n"))
	require.Error(t, err)
	assert.Contains(t, apperr.From(err).Message, "gender, address, first_release_year, no_of_albums_released")

	rows := []string{"name,dob,gender,address,first_release_year,no_of_albums_released"}
	for i := 0; i < 3; i++ {
		rows = append(rows, "A"+string(rune('a'+i))+",1990-01-01,M,X,2000,1")
	}
	_, err = h.importer(2, nil).Import(ctx, strings.NewReader(strings.Join(rows, "\n")))
	require.Error(t, err)
	assert.Equal(t, "CSV file exceeds the limit of 2 rows", apperr.From(err).Message)

	stored := 0
	require.NoError(t, h.repo.EachBatch(ctx, 10, func(b []models.Artist) error {
		stored += len(b)
		return nil
	}))
	assert.Zero(t, stored, "nothing is inserted when the file is rejected")
}

func TestImportHeaderWithBOMAndCase(t *testing.T) {
	h := newHarness(t)
	body := "\ufeffName,DOB,Gender,Address,First_Release_Year,No_Of_Albums_Released\nEcho,1970-07-07,m,Lake,1999,0\n"
	report, err := h.importer(10, nil).Import(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Totals.Created)
}
