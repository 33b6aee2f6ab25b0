// internal/domain/verse/format.go
package verse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrFormat is returned when a verse cannot be rendered.
var ErrFormat = errors.New("verse cannot be formatted")

// Format renders v as a Markdown channel message. cursor is the zero-based
// position of v and total the dataset size; both feed the progress line.
// Format is pure: equal inputs always produce the same text.
func Format(v Verse, cursor, total int, tmpl Template) (string, error) {
	if total <= 0 {
		return "", fmt.Errorf("%w: dataset size %d", ErrFormat, total)
	}
	if strings.TrimSpace(v.ArabicText) == "" || strings.TrimSpace(v.EnglishText) == "" || strings.TrimSpace(v.SurahName) == "" {
		return "", fmt.Errorf("%w: missing text field", ErrFormat)
	}
	surahNo, err := parseIntLike(v.SurahNo)
	if err != nil {
		return "", fmt.Errorf("%w: surah_no: %v", ErrFormat, err)
	}
	ayahNo, err := parseIntLike(v.AyahNo)
	if err != nil {
		return "", fmt.Errorf("%w: ayah_no_surah: %v", ErrFormat, err)
	}

	position := cursor + 1
	progress := float64(position) / float64(total) * 100

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", tmpl.Title)
	fmt.Fprintf(&b, "📖 *%s* (%d:%d)\n\n", v.SurahName, surahNo, ayahNo)
	fmt.Fprintf(&b, "🔸 *Arabic:*\n%s\n\n", v.ArabicText)
	fmt.Fprintf(&b, "🔸 *English:*\n%s\n\n", v.EnglishText)
	fmt.Fprintf(&b, "%s\n%s\n\n", tmpl.Separator, tmpl.Blessing)
	fmt.Fprintf(&b, "📊 Progress: %d/%d (%.1f%%)\n\n", position, total, progress)
	b.WriteString(tmpl.Hashtags)
	return b.String(), nil
}

// parseIntLike accepts "7", " 7 " and integral floats such as "7.0".
func parseIntLike(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("empty value")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return int(f), nil
}
