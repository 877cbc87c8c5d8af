package config

import (
	"strings"

	"github.com/phyten/codecount/internal/engine"
)

type EngineConfig struct {
	Include           *[]string `yaml:"include" toml:"include" json:"include"`
	Exclude           *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	UseGitignore      *bool     `yaml:"use_gitignore" toml:"use_gitignore" json:"use_gitignore"`
	Discovery         *string   `yaml:"discovery" toml:"discovery" json:"discovery"`
	IgnoreUnsupported *bool     `yaml:"ignore_unsupported" toml:"ignore_unsupported" json:"ignore_unsupported"`
	Encoding          *string   `yaml:"encoding" toml:"encoding" json:"encoding"`
	MaxOpenFiles      *int      `yaml:"max_open_files" toml:"max_open_files" json:"max_open_files"`
	MaxFileBytes      *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	ExtensionDirs     *[]string `yaml:"extension_dirs" toml:"extension_dirs" json:"extension_dirs"`
	Progress          *bool     `yaml:"progress" toml:"progress" json:"progress"`
}

type OutputConfig struct {
	EOL            *string `yaml:"eol" toml:"eol" json:"eol"`
	OutputDir      *string `yaml:"output_dir" toml:"output_dir" json:"output_dir"`
	OutputText     *bool   `yaml:"output_text" toml:"output_text" json:"output_text"`
	OutputCSV      *bool   `yaml:"output_csv" toml:"output_csv" json:"output_csv"`
	OutputMarkdown *bool   `yaml:"output_markdown" toml:"output_markdown" json:"output_markdown"`
	OutputJSON     *bool   `yaml:"output_json" toml:"output_json" json:"output_json"`
	Preview        *string `yaml:"preview" toml:"preview" json:"preview"`
	DiffWith       *string `yaml:"diff_with" toml:"diff_with" json:"diff_with"`
	LinkBase       *string `yaml:"link_base" toml:"link_base" json:"link_base"`
	Color          *string `yaml:"color" toml:"color" json:"color"`
}

// LanguageConfig は設定ファイルで追加・拡張する言語
type LanguageConfig struct {
	ID            string
	Aliases       []string
	Extensions    []string
	Filenames     []string
	LineComments  []string
	BlockComments [][2]string
	BlockStrings  [][2]string
}

// BlockCommentConfig adds block-string pairs to existing languages.
type BlockCommentConfig struct {
	Types    []string
	Patterns [][2]string
}

type Config struct {
	Engine       EngineConfig
	Output       OutputConfig
	Languages    []LanguageConfig
	BlockComment []BlockCommentConfig
}

type EngineSettings struct {
	Include           []string
	Exclude           []string
	UseGitignore      bool
	Discovery         string
	IgnoreUnsupported bool
	Encoding          string
	MaxOpenFiles      int
	MaxFileBytes      int
	ExtensionDirs     []string
	Progress          bool
}

type OutputSettings struct {
	EOL            string
	OutputDir      string
	OutputText     bool
	OutputCSV      bool
	OutputMarkdown bool
	OutputJSON     bool
	Preview        string
	DiffWith       string
	// LinkBase は Markdown のファイルリンクの前置。"git" なら origin から導出
	LinkBase string
	Color    string
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Include:           cloneStrings(opts.Include),
		Exclude:           cloneStrings(opts.Exclude),
		UseGitignore:      opts.UseGitignore,
		Discovery:         opts.Discovery,
		IgnoreUnsupported: opts.IgnoreUnsupported,
		Encoding:          opts.Encoding,
		MaxOpenFiles:      opts.MaxOpenFiles,
		MaxFileBytes:      opts.MaxFileBytes,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Include = cloneStrings(s.Include)
	opts.Exclude = cloneStrings(s.Exclude)
	opts.UseGitignore = s.UseGitignore
	opts.Discovery = s.Discovery
	opts.IgnoreUnsupported = s.IgnoreUnsupported
	opts.Encoding = s.Encoding
	opts.MaxOpenFiles = s.MaxOpenFiles
	opts.MaxFileBytes = s.MaxFileBytes
}

func DefaultOutputSettings() OutputSettings {
	return OutputSettings{
		EOL:            "lf",
		OutputDir:      ".codecount",
		OutputText:     true,
		OutputCSV:      true,
		OutputMarkdown: true,
		OutputJSON:     true,
		Preview:        "",
		DiffWith:       "",
		Color:          "auto",
	}
}

// ApplyOutputDir copies the output directory into opts so discovery skips it.
func (s OutputSettings) ApplyOutputDir(opts *engine.Options) {
	if opts == nil {
		return
	}
	if trimmed := strings.TrimSpace(s.OutputDir); trimmed != "" {
		opts.OutputDir = trimmed
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
