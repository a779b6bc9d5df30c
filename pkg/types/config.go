package types

// ParserConfig holds settings for page-text record extraction.
type ParserConfig struct {
	// StartPage is the first page (one-based) to parse. Lesson PDFs open
	// with a cover page, so the default is 2.
	StartPage int `json:"start_page" yaml:"start_page"`

	// MaxLineRunes drops lines longer than this from consideration;
	// they are running prose, not vocabulary entries (default 100).
	MaxLineRunes int `json:"max_line_runes" yaml:"max_line_runes"`

	// HeaderPatterns are substrings that mark a line as boilerplate
	// (lesson headings, table headers, publisher footers). Empty means
	// the built-in defaults.
	HeaderPatterns []string `json:"header_patterns,omitempty" yaml:"header_patterns,omitempty"`
}

// ExportConfig holds settings for deck construction and .apkg output.
type ExportConfig struct {
	// DeckName is the Anki deck name and the artifact basename.
	DeckName string `json:"deck_name" yaml:"deck_name"`

	// OutputDir is the directory the .apkg is written to, created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Subdecks selects the per-lesson subdeck layout instead of one flat deck.
	Subdecks bool `json:"subdecks" yaml:"subdecks"`

	// FixedTags are attached to every card in addition to its lesson tags.
	FixedTags []string `json:"fixed_tags,omitempty" yaml:"fixed_tags,omitempty"`
}

// PipelineConfig groups all stage configurations for one conversion run.
type PipelineConfig struct {
	// InputDir is the directory scanned for *.pdf files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// SingleFile, when set, processes exactly one PDF instead of a
	// directory scan.
	SingleFile string `json:"single_file,omitempty" yaml:"single_file,omitempty"`

	// DumpPath, when set, writes the deduplicated records to this path
	// as YAML or JSON, selected by extension.
	DumpPath string `json:"dump_path,omitempty" yaml:"dump_path,omitempty"`

	Parser ParserConfig `json:"parser" yaml:"parser"`
	Export ExportConfig `json:"export" yaml:"export"`
}

// Default values applied by the stages when a field is zero.
const (
	DefaultStartPage    = 2
	DefaultMaxLineRunes = 100
	DefaultInputDir     = "pdf"
	DefaultOutputDir    = "anki_decks"
	DefaultDeckName     = "星荣英语词汇大全"
)

// DefaultFixedTags identify the deck family, language pair, and content type.
var DefaultFixedTags = []string{"Xingrong", "English", "Vocabulary"}
