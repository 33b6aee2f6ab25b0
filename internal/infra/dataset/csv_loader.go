package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"verse_channel_bot/internal/domain/verse"
)

// Column names the dataset must carry.
const (
	ColumnArabic    = "ayah_ar"
	ColumnEnglish   = "ayah_en"
	ColumnSurahName = "surah_name_en"
	ColumnAyahNo    = "ayah_no_surah"
	ColumnSurahNo   = "surah_no"
)

var requiredColumns = []string{ColumnArabic, ColumnEnglish, ColumnSurahName, ColumnAyahNo, ColumnSurahNo}

// ErrMissingColumns is returned when the header lacks a required column.
var ErrMissingColumns = errors.New("missing required columns")

// CSVLoader reads verses from a CSV file with a header row.
type CSVLoader struct {
	path string
}

var _ verse.Loader = (*CSVLoader)(nil)

func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// Load reads the whole file. Row order is preserved. Rows are not
// validated beyond the header; short rows leave trailing fields empty.
func (l *CSVLoader) Load() ([]verse.Verse, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening csv %s: %w", l.path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads verses from CSV data.
func Parse(r io.Reader) ([]verse.Verse, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
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
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	field := func(row []string, col string) string {
		i := index[col]
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	verses := make([]verse.Verse, 0, 1024)
	for n := 1; ; n++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record %d: %w", n, err)
		}
		verses = append(verses, verse.Verse{
			ArabicText:  field(row, ColumnArabic),
			EnglishText: field(row, ColumnEnglish),
			SurahName:   field(row, ColumnSurahName),
			SurahNo:     field(row, ColumnSurahNo),
			AyahNo:      field(row, ColumnAyahNo),
		})
	}

	return verses, nil
}
