package verse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVerse() Verse {
	return Verse{
		ArabicText:  "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
		EnglishText: "In the name of Allah, the Entirely Merciful, the Especially Merciful.",
		SurahName:   "Al-Faatiha",
		SurahNo:     "1",
		AyahNo:      "1",
	}
}

func TestFormat_Layout(t *testing.T) {
	got, err := Format(sampleVerse(), 0, 3, DefaultTemplate())
	require.NoError(t, err)

	want := "🕌 *Verse of the Hour* 🕌\n\n" +
		"📖 *Al-Faatiha* (1:1)\n\n" +
		"🔸 *Arabic:*\nبِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ\n\n" +
		"🔸 *English:*\nIn the name of Allah, the Entirely Merciful, the Especially Merciful.\n\n" +
		"─────────────────\n✨ May this verse bring peace and guidance to your heart ✨\n\n" +
		"📊 Progress: 1/3 (33.3%)\n\n" +
		"#Quran #Verse #Islam #Guidance #AutomatedByGitHub"
	assert.Equal(t, want, got)
}

func TestFormat_Progress(t *testing.T) {
	tests := []struct {
		cursor, total int
		want          string
	}{
		{0, 6236, "📊 Progress: 1/6236 (0.0%)"},
		{1, 3, "📊 Progress: 2/3 (66.7%)"},
		{2, 3, "📊 Progress: 3/3 (100.0%)"},
		{6235, 6236, "📊 Progress: 6236/6236 (100.0%)"},
		{3117, 6236, "📊 Progress: 3118/6236 (50.0%)"},
	}

	for _, tt := range tests {
		got, err := Format(sampleVerse(), tt.cursor, tt.total, DefaultTemplate())
		require.NoError(t, err)
		assert.Contains(t, got, tt.want)
	}
}

func TestFormat_Deterministic(t *testing.T) {
	a, err := Format(sampleVerse(), 5, 10, DefaultTemplate())
	require.NoError(t, err)
	b, err := Format(sampleVerse(), 5, 10, DefaultTemplate())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFormat_IntegralFloatNumbers(t *testing.T) {
	v := sampleVerse()
	v.SurahNo = "2.0"
	v.AyahNo = " 255 "

	got, err := Format(v, 0, 1, DefaultTemplate())
	require.NoError(t, err)
	assert.Contains(t, got, "(2:255)")
}

func TestFormat_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *Verse)
		total  int
	}{
		{name: "non numeric surah", mutate: func(v *Verse) { v.SurahNo = "one" }, total: 3},
		{name: "fractional ayah", mutate: func(v *Verse) { v.AyahNo = "1.5" }, total: 3},
		{name: "empty ayah", mutate: func(v *Verse) { v.AyahNo = "" }, total: 3},
		{name: "NaN surah", mutate: func(v *Verse) { v.SurahNo = "NaN" }, total: 3},
		{name: "missing arabic", mutate: func(v *Verse) { v.ArabicText = "" }, total: 3},
		{name: "missing english", mutate: func(v *Verse) { v.EnglishText = "  " }, total: 3},
		{name: "missing surah name", mutate: func(v *Verse) { v.SurahName = "" }, total: 3},
		{name: "empty dataset", mutate: func(v *Verse) {}, total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := sampleVerse()
			tt.mutate(&v)

			got, err := Format(v, 0, tt.total, DefaultTemplate())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))
			assert.Empty(t, got)
		})
	}
}

func TestTemplate_WithDefaults(t *testing.T) {
	tmpl := Template{Hashtags: "#Custom"}.WithDefaults()

	assert.Equal(t, "#Custom", tmpl.Hashtags)
	assert.Equal(t, DefaultTemplate().Title, tmpl.Title)
	assert.Equal(t, DefaultTemplate().Blessing, tmpl.Blessing)
	assert.Equal(t, DefaultTemplate().Separator, tmpl.Separator)
}

func TestVerse_Reference(t *testing.T) {
	assert.Equal(t, "Al-Faatiha 1:1", sampleVerse().Reference())
}
