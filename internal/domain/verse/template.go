// internal/domain/verse/template.go
package verse

// Template holds the fixed decoration around a rendered verse.
type Template struct {
	Title     string `yaml:"title"`
	Blessing  string `yaml:"blessing"`
	Separator string `yaml:"separator"`
	Hashtags  string `yaml:"hashtags"`
}

// DefaultTemplate returns the stock "Verse of the Hour" decoration.
func DefaultTemplate() Template {
	return Template{
		Title:     "🕌 *Verse of the Hour* 🕌",
		Blessing:  "✨ May this verse bring peace and guidance to your heart ✨",
		Separator: "─────────────────",
		Hashtags:  "#Quran #Verse #Islam #Guidance #AutomatedByGitHub",
	}
}

// WithDefaults fills empty fields from DefaultTemplate.
func (t Template) WithDefaults() Template {
	def := DefaultTemplate()
	if t.Title == "" {
		t.Title = def.Title
	}
	if t.Blessing == "" {
		t.Blessing = def.Blessing
	}
	if t.Separator == "" {
		t.Separator = def.Separator
	}
	if t.Hashtags == "" {
		t.Hashtags = def.Hashtags
	}
	return t
}
