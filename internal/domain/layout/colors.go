package layout

// OtherLanguage is the colour table key used for unknown and empty languages.
const OtherLanguage = "Other"

var languageColors = map[string]string{
	"Python":           "#3572A5",
	"TypeScript":       "#3178c6",
	"JavaScript":       "#f1e05a",
	"C++":              "#f34b7d",
	"C":                "#555555",
	"Rust":             "#dea584",
	"Go":               "#00ADD8",
	"Java":             "#b07219",
	"PHP":              "#4F5D95",
	"HTML":             "#e34c26",
	"C#":               "#178600",
	"Scala":            "#c22d40",
	"Shell":            "#89e051",
	"Cypher":           "#34c0eb",
	"Scheme":           "#1e4aec",
	"CSS":              "#563d7c",
	"Jupyter Notebook": "#DA5B0B",
	OtherLanguage:      "#cccccc",
}

// ColorFor returns the display colour of a language, falling back to the
// Other colour for languages missing from the table.
func ColorFor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return languageColors[OtherLanguage]
}

// DisplayName returns the label shown for a language key.
func DisplayName(language string) string {
	if language == "" {
		return "Unclassified"
	}
	return language
}
