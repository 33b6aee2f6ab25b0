// internal/domain/verse/verse.go
package verse

// Verse is one row of the dataset. Values are kept as they appear in the
// source; numeric columns are parsed only when a message is rendered.
type Verse struct {
	ArabicText  string // ayah_ar
	EnglishText string // ayah_en
	SurahName   string // surah_name_en
	SurahNo     string // surah_no
	AyahNo      string // ayah_no_surah
}

// Reference renders the verse position as "Name surah:ayah" for log lines.
func (v Verse) Reference() string {
	return v.SurahName + " " + v.SurahNo + ":" + v.AyahNo
}

// Loader produces the ordered, read-only verse sequence.
type Loader interface {
	Load() ([]Verse, error)
}
