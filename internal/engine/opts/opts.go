package opts

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phyten/codecount/internal/engine"
)

const (
	maxJobs = 64
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// DefaultInclude は include 未指定時の glob
var DefaultInclude = []string{"**/*"}

// Defaults returns the shared baseline options for the CLI, config files and
// the environment.
func Defaults(targetDir string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		TargetDir:         targetDir,
		Include:           append([]string(nil), DefaultInclude...),
		Exclude:           []string{".gitignore"},
		UseGitignore:      true,
		Discovery:         engine.DiscoveryWalk,
		IgnoreUnsupported: true,
		Encoding:          engine.DefaultEncoding,
		MaxOpenFiles:      jobs,
		MaxFileBytes:      0,
		OutputDir:         ".codecount",
	}
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	o.Discovery = strings.ToLower(strings.TrimSpace(o.Discovery))
	switch o.Discovery {
	case "", engine.DiscoveryWalk:
		o.Discovery = engine.DiscoveryWalk
	case engine.DiscoveryGit:
	default:
		return fmt.Errorf("invalid --discovery: %s", o.Discovery)
	}

	if o.MaxOpenFiles < 1 || o.MaxOpenFiles > maxJobs {
		return fmt.Errorf("max_open_files must be between 1 and %d", maxJobs)
	}
	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}

	o.Encoding = strings.ToLower(strings.TrimSpace(o.Encoding))
	if o.Encoding == "" {
		o.Encoding = engine.DefaultEncoding
	}
	if _, err := engine.LookupEncoding(o.Encoding); err != nil {
		return fmt.Errorf("invalid --encoding: %w", err)
	}

	if strings.TrimSpace(o.TargetDir) == "" {
		o.TargetDir = "."
	}

	o.Include = trimSlice(o.Include)
	if len(o.Include) == 0 {
		o.Include = append([]string(nil), DefaultInclude...)
	}
	o.Exclude = trimSlice(o.Exclude)
	for _, pat := range o.Include {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("invalid --include glob: %q", pat)
		}
	}
	for _, pat := range o.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("invalid --exclude glob: %q", pat)
		}
	}
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}


// NormalizePreview validates the report opened after a run.
func NormalizePreview(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "none":
		return "", nil
	case "text", "csv", "markdown":
		return v, nil
	case "md":
		return "markdown", nil
	case "txt":
		return "text", nil
	}
	return "", fmt.Errorf("invalid --preview: %s", value)
}

// SplitMulti turns repeated flags (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
