package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/codecount/internal/engine/opts"
)

// Keys are matched after normalizeKey, so camelCase spellings collapse to
// their lower-case form.
var engineKeyMap = map[string]string{
	"include":                 "include",
	"includes":                "include",
	"exclude":                 "exclude",
	"excludes":                "exclude",
	"use_gitignore":           "use_gitignore",
	"usegitignore":            "use_gitignore",
	"gitignore":               "use_gitignore",
	"discovery":               "discovery",
	"ignore_unsupported":      "ignore_unsupported",
	"ignore_unsupported_file": "ignore_unsupported",
	"ignoreunsupportedfile":   "ignore_unsupported",
	"encoding":                "encoding",
	"max_open_files":          "max_open_files",
	"maxopenfiles":            "max_open_files",
	"jobs":                    "max_open_files",
	"max_file_bytes":          "max_file_bytes",
	"max_bytes":               "max_file_bytes",
	"extension_dirs":          "extension_dirs",
	"extensiondirs":           "extension_dirs",
	"progress":                "progress",
}

var outputKeyMap = map[string]string{
	"eol":                 "eol",
	"end_of_line":         "eol",
	"endofline":           "eol",
	"output_dir":          "output_dir",
	"output_directory":    "output_dir",
	"outputdirectory":     "output_dir",
	"output_text":         "output_text",
	"outputastext":        "output_text",
	"output_csv":          "output_csv",
	"outputascsv":         "output_csv",
	"output_markdown":     "output_markdown",
	"outputasmarkdown":    "output_markdown",
	"output_json":         "output_json",
	"preview":             "preview",
	"output_preview_type": "preview",
	"outputpreviewtype":   "preview",
	"diff_with":           "diff_with",
	"link_base":           "link_base",
	"linkbase":            "link_base",
	"color":               "color",
}

var sectionKeyMap = map[string]string{
	"engine":        "engine",
	"output":        "output",
	"languages":     "languages",
	"block_comment": "block_comment",
	"blockcomment":  "block_comment",
}

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	engineSection := make(map[string]any)
	outputSection := make(map[string]any)

	// Sorted so that the reported error is stable when several keys are bad.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		norm := normalizeKey(key)
		switch sectionKeyMap[norm] {
		case "engine":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("engine: %w", err)
			}
			if err := fillSection(engineSection, sub, engineKeyMap, "engine"); err != nil {
				return cfg, err
			}
			continue
		case "output":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("output: %w", err)
			}
			if err := fillSection(outputSection, sub, outputKeyMap, "output"); err != nil {
				return cfg, err
			}
			continue
		case "languages":
			langs, err := decodeLanguages(value)
			if err != nil {
				return cfg, fmt.Errorf("languages: %w", err)
			}
			cfg.Languages = langs
			continue
		case "block_comment":
			blocks, err := decodeBlockComments(value)
			if err != nil {
				return cfg, fmt.Errorf("block_comment: %w", err)
			}
			cfg.BlockComment = blocks
			continue
		}
		if canonical, ok := engineKeyMap[norm]; ok {
			engineSection[canonical] = value
			continue
		}
		if canonical, ok := outputKeyMap[norm]; ok {
			outputSection[canonical] = value
			continue
		}
		return cfg, fmt.Errorf("unknown config key: %s", key)
	}

	if err := assignEngine(engineSection, &cfg.Engine); err != nil {
		return cfg, fmt.Errorf("engine: %w", err)
	}
	if err := assignOutput(outputSection, &cfg.Output); err != nil {
		return cfg, fmt.Errorf("output: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignEngine(section map[string]any, dst *EngineConfig) error {
	for key, value := range section {
		switch key {
		case "include":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Include = &list
		case "exclude":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Exclude = &list
		case "extension_dirs":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.ExtensionDirs = &list
		case "use_gitignore":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.UseGitignore = &b
		case "ignore_unsupported":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.IgnoreUnsupported = &b
		case "progress":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Progress = &b
		case "discovery":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Discovery = &trimmed
		case "encoding":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Encoding = &trimmed
		case "max_open_files":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxOpenFiles = &n
		case "max_file_bytes":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxFileBytes = &n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignOutput(section map[string]any, dst *OutputConfig) error {
	for key, value := range section {
		switch key {
		case "eol", "output_dir", "preview", "diff_with", "link_base", "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			// eol keeps raw "\r\n" literals intact; everything else is trimmed.
			if key != "eol" {
				str = strings.TrimSpace(str)
			}
			switch key {
			case "eol":
				dst.EOL = &str
			case "output_dir":
				dst.OutputDir = &str
			case "preview":
				dst.Preview = &str
			case "diff_with":
				dst.DiffWith = &str
			case "link_base":
				dst.LinkBase = &str
			case "color":
				dst.Color = &str
			}
		case "output_text", "output_csv", "output_markdown", "output_json":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			switch key {
			case "output_text":
				dst.OutputText = &b
			case "output_csv":
				dst.OutputCSV = &b
			case "output_markdown":
				dst.OutputMarkdown = &b
			case "output_json":
				dst.OutputJSON = &b
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func decodeLanguages(value any) ([]LanguageConfig, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", value)
	}
	out := make([]LanguageConfig, 0, len(items))
	for i, item := range items {
		m, err := toStringKeyMap(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		var lc LanguageConfig
		for key, v := range m {
			var err error
			switch normalizeKey(key) {
			case "id":
				lc.ID, err = expectString(v, "id")
			case "aliases":
				lc.Aliases, err = expectStringList(v, "aliases")
			case "extensions":
				lc.Extensions, err = expectStringList(v, "extensions")
			case "filenames":
				lc.Filenames, err = expectStringList(v, "filenames")
			case "line_comments", "linecomments", "line_comment", "linecomment":
				lc.LineComments, err = expectStringList(v, "line_comments")
			case "block_comments", "blockcomments":
				lc.BlockComments, err = expectPairs(v, "block_comments")
			case "block_strings", "blockstrings":
				lc.BlockStrings, err = expectPairs(v, "block_strings")
			default:
				err = fmt.Errorf("unknown key: %s", key)
			}
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
		}
		lc.ID = strings.TrimSpace(lc.ID)
		if lc.ID == "" {
			return nil, fmt.Errorf("[%d]: id is required", i)
		}
		out = append(out, lc)
	}
	return out, nil
}

func decodeBlockComments(value any) ([]BlockCommentConfig, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", value)
	}
	out := make([]BlockCommentConfig, 0, len(items))
	for i, item := range items {
		m, err := toStringKeyMap(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		var bc BlockCommentConfig
		for key, v := range m {
			var err error
			switch normalizeKey(key) {
			case "types":
				bc.Types, err = expectStringList(v, "types")
			case "patterns":
				bc.Patterns, err = expectPairs(v, "patterns")
			default:
				err = fmt.Errorf("unknown key: %s", key)
			}
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
		}
		out = append(out, bc)
	}
	return out, nil
}

// expectPairs accepts [["/*", "*/"], ...] or [{begin: "/*", end: "*/"}, ...].
func expectPairs(value any, field string) ([][2]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list of pairs for %s, got %T", field, value)
	}
	out := make([][2]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case []any:
			if len(v) != 2 {
				return nil, fmt.Errorf("%s: pair must have 2 elements, got %d", field, len(v))
			}
			begin, err := expectString(v[0], field)
			if err != nil {
				return nil, err
			}
			end, err := expectString(v[1], field)
			if err != nil {
				return nil, err
			}
			out = append(out, [2]string{begin, end})
		default:
			m, err := toStringKeyMap(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field, err)
			}
			begin, err := expectString(m["begin"], field+".begin")
			if err != nil {
				return nil, err
			}
			end, err := expectString(m["end"], field+".end")
			if err != nil {
				return nil, err
			}
			out = append(out, [2]string{begin, end})
		}
	}
	return out, nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		parts := engineopts.SplitMulti([]string{v})
		return normalizeList(parts), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
