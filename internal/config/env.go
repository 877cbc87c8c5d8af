package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/codecount/internal/engine/opts"
)

// EnvPrefix は環境変数レイヤーのキー接頭辞
const EnvPrefix = "CODECOUNT_"

// envReader collects the parse errors of every variable so a single run
// reports all bad values at once.
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) lookup(name string) (string, string, bool) {
	key := EnvPrefix + name
	raw := strings.TrimSpace(r.getenv(key))
	return key, raw, raw != ""
}

func (r *envReader) str(dst **string, name string) {
	if _, raw, ok := r.lookup(name); ok {
		*dst = &raw
	}
}

func (r *envReader) list(dst **[]string, name string) {
	_, raw, ok := r.lookup(name)
	if !ok {
		return
	}
	list := engineopts.SplitMulti([]string{raw})
	if list == nil {
		list = []string{}
	}
	*dst = &list
}

func (r *envReader) boolean(dst **bool, name string) {
	key, raw, ok := r.lookup(name)
	if !ok {
		return
	}
	v, err := engineopts.ParseBool(raw, key)
	if err != nil {
		r.errs = append(r.errs, err)
		return
	}
	*dst = &v
}

// integer accepts any non-negative value; NormalizeAndValidate applies the
// real bounds.
func (r *envReader) integer(dst **int, name string) {
	key, raw, ok := r.lookup(name)
	if !ok {
		return
	}
	v, err := engineopts.ParseIntInRange(raw, key, 0, math.MaxInt)
	if err != nil {
		r.errs = append(r.errs, err)
		return
	}
	*dst = &v
}

// FromEnv reads the CODECOUNT_* layer. Empty variables are unset. Every
// malformed value is reported, joined into one error.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	r := &envReader{getenv: getenv}
	var cfg Config

	e := &cfg.Engine
	r.list(&e.Include, "INCLUDE")
	r.list(&e.Exclude, "EXCLUDE")
	r.boolean(&e.UseGitignore, "USE_GITIGNORE")
	r.str(&e.Discovery, "DISCOVERY")
	r.boolean(&e.IgnoreUnsupported, "IGNORE_UNSUPPORTED")
	r.str(&e.Encoding, "ENCODING")
	r.integer(&e.MaxOpenFiles, "JOBS")
	r.integer(&e.MaxOpenFiles, "MAX_OPEN_FILES") // JOBS より優先
	r.integer(&e.MaxFileBytes, "MAX_FILE_BYTES")
	r.list(&e.ExtensionDirs, "EXTENSION_DIRS")
	r.boolean(&e.Progress, "PROGRESS")

	o := &cfg.Output
	r.str(&o.EOL, "EOL") // 生の CRLF は trim で消えるので crlf か "\r\n" 表記で
	r.str(&o.OutputDir, "OUTPUT_DIR")
	r.boolean(&o.OutputText, "OUTPUT_TEXT")
	r.boolean(&o.OutputCSV, "OUTPUT_CSV")
	r.boolean(&o.OutputMarkdown, "OUTPUT_MARKDOWN")
	r.boolean(&o.OutputJSON, "OUTPUT_JSON")
	r.str(&o.Preview, "PREVIEW")
	r.str(&o.DiffWith, "DIFF_WITH")
	r.str(&o.LinkBase, "LINK_BASE")
	r.str(&o.Color, "COLOR")

	return cfg, errors.Join(r.errs...)
}
