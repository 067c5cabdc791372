// Package importer loads a release dump (CSV) into a fresh store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franz/tnt-search/internal/store"
	"github.com/franz/tnt-search/internal/util"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/unicode/norm"
)

// Dump column names, matched case-insensitively against the header row
const (
	ColDate        = "DATA"
	ColHash        = "HASH"
	ColTopic       = "TOPIC"
	ColPost        = "POST"
	ColAuthor      = "AUTORE"
	ColTitle       = "TITOLO"
	ColDescription = "DESCRIZIONE"
	ColSize        = "DIMENSIONE"
	ColCategory    = "CATEGORIA"
)

var requiredColumns = []string{
	ColDate, ColHash, ColTopic, ColPost, ColAuthor,
	ColTitle, ColDescription, ColSize, ColCategory,
}

// timeLayouts are the ISO forms accepted for the DATA column
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02",
}

// maxReportedErrors caps how many bad rows are kept in Result.Errors
const maxReportedErrors = 20

// Importer copies dump rows into a store in batches
type Importer struct {
	store     *store.Store
	batchSize int
	progress  bool
}

// Config holds importer configuration
type Config struct {
	Store     *store.Store
	BatchSize int
	// Progress shows a byte progress bar; only honored on a terminal
	Progress bool
}

// New creates a new Importer
func New(cfg *Config) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	return &Importer{
		store:     cfg.Store,
		batchSize: cfg.BatchSize,
		progress:  cfg.Progress,
	}
}

// Result summarizes an import
type Result struct {
	Imported int64
	Skipped  int64
	Errors   []error
}

// PrepareTarget makes path ready for a fresh import. An existing file is
// ErrStoreExists unless replace is set, in which case it is removed along
// with any leftover journal.
func PrepareTarget(path string, replace bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	if !replace {
		return fmt.Errorf("%w: %s", util.ErrStoreExists, path)
	}

	util.DebugLog("Removing %q...", path)
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// ImportFile imports the dump at path
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	defer f.Close()

	var size int64 = -1
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	return im.Import(ctx, f, size)
}

// Import reads CSV rows from r. size is the input length in bytes for the
// progress bar, or -1 when unknown. Rows that cannot be parsed are skipped
// and reported; store failures abort the import.
func (im *Importer) Import(ctx context.Context, r io.Reader, size int64) (*Result, error) {
	var bar *progressbar.ProgressBar
	if im.progress && util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions64(size,
			progressbar.OptionSetDescription("Importing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
		defer bar.Finish()
		pr := progressbar.NewReader(r, bar)
		r = &pr
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dump header: %w", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]error, 0)}
	batch := make([]store.Release, 0, im.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.store.InsertReleases(ctx, batch); err != nil {
			return err
		}
		result.Imported += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.skip(fmt.Errorf("line %d: %w", line, err))
				continue
			}
			return result, fmt.Errorf("failed to read dump: %w", err)
		}

		release, err := parseRecord(record, columns)
		if err != nil {
			result.skip(fmt.Errorf("line %d: %w", line, err))
			continue
		}

		batch = append(batch, release)
		if len(batch) >= im.batchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}

	if err := flush(); err != nil {
		return result, err
	}

	return result, nil
}

func (r *Result) skip(err error) {
	r.Skipped++
	util.DebugLog("Skipping row: %v", err)
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, err)
	}
}

// indexColumns maps every required column to its position in the header
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: dump header lacks columns %s", util.ErrInvalidRecord, strings.Join(missing, ", "))
	}

	return columns, nil
}

// parseRecord converts one CSV row into a Release
func parseRecord(record []string, columns map[string]int) (store.Release, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return norm.NFC.String(strings.TrimSpace(record[i]))
	}

	var r store.Release
	var err error

	r.Hash = field(ColHash)
	if r.Hash == "" {
		return r, fmt.Errorf("%w: empty %s", util.ErrInvalidRecord, ColHash)
	}

	if r.Timestamp, err = parseTime(field(ColDate)); err != nil {
		return r, err
	}
	if r.Size, err = parseInt(ColSize, field(ColSize), true); err != nil {
		return r, err
	}
	if r.Size < 0 {
		return r, fmt.Errorf("%w: negative %s %d", util.ErrInvalidRecord, ColSize, r.Size)
	}
	if r.TopicID, err = parseInt(ColTopic, field(ColTopic), false); err != nil {
		return r, err
	}
	if r.PostID, err = parseInt(ColPost, field(ColPost), false); err != nil {
		return r, err
	}
	if r.Category, err = parseInt(ColCategory, field(ColCategory), false); err != nil {
		return r, err
	}

	r.Author = field(ColAuthor)
	r.Title = field(ColTitle)
	r.Description = field(ColDescription)

	return r, nil
}

// parseInt accepts integers written as "123" or "123.0". Empty values are
// 0 unless required.
func parseInt(column, s string, required bool) (int64, error) {
	if s == "" {
		if required {
			return 0, fmt.Errorf("%w: empty %s", util.ErrInvalidRecord, column)
		}
		return 0, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("%w: %s is not an integer: %q", util.ErrInvalidRecord, column, s)
	}
	return int64(f), nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad %s %q", util.ErrInvalidRecord, ColDate, s)
}
