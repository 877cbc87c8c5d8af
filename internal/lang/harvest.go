package lang

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/tailscale/hujson"

	"github.com/phyten/codecount/internal/classify"
)

type manifest struct {
	Contributes struct {
		Languages []manifestLanguage `json:"languages"`
	} `json:"contributes"`
}

type manifestLanguage struct {
	ID            string   `json:"id"`
	Aliases       []string `json:"aliases"`
	Extensions    []string `json:"extensions"`
	Filenames     []string `json:"filenames"`
	Configuration string   `json:"configuration"`
}

type languageConfiguration struct {
	Comments struct {
		LineComment  lineComment `json:"lineComment"`
		BlockComment []string    `json:"blockComment"`
	} `json:"comments"`
}

// lineComment accepts both "//" and {"comment": "//"}.
type lineComment string

func (l *lineComment) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = lineComment(s)
		return nil
	}
	var obj struct {
		Comment string `json:"comment"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*l = lineComment(obj.Comment)
	return nil
}

// HarvestExtensions collects rule sets from installed editor extensions.
// Each dir holds one sub-directory per extension with a package.json that
// contributes languages. Missing dirs are skipped; malformed manifests and
// configurations are reported but do not stop the harvest.
func HarvestExtensions(dirs ...string) ([]RuleSet, error) {
	var (
		out   []RuleSet
		errs  []error
		cache = make(map[string]*languageConfiguration)
	)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("read extension dir %s: %w", dir, err))
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			extDir := filepath.Join(dir, e.Name())
			sets, err := harvestOne(extDir, cache)
			if err != nil {
				errs = append(errs, err)
			}
			out = append(out, sets...)
		}
	}
	return out, errors.Join(errs...)
}

func harvestOne(extDir string, cache map[string]*languageConfiguration) ([]RuleSet, error) {
	manifestPath := filepath.Join(extDir, "package.json")
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", manifestPath, err)
	}
	var m manifest
	if err := decodeJSONC(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestPath, err)
	}

	var (
		out  []RuleSet
		errs []error
	)
	for _, ml := range m.Contributes.Languages {
		if ml.ID == "" {
			continue
		}
		rs := RuleSet{
			ID:         ml.ID,
			Aliases:    ml.Aliases,
			Extensions: ml.Extensions,
			Filenames:  ml.Filenames,
		}
		if ml.Configuration != "" {
			cfgPath := filepath.Join(extDir, filepath.FromSlash(ml.Configuration))
			cfg, err := loadLanguageConfiguration(cfgPath, cache)
			if err != nil {
				errs = append(errs, err)
			} else {
				rs.Grammar = cfg.grammar()
			}
		}
		out = append(out, rs)
	}
	return out, errors.Join(errs...)
}

func loadLanguageConfiguration(p string, cache map[string]*languageConfiguration) (*languageConfiguration, error) {
	if cfg, ok := cache[p]; ok {
		return cfg, nil
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	var cfg languageConfiguration
	if err := decodeJSONC(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	cache[p] = &cfg
	return &cfg, nil
}

func (c *languageConfiguration) grammar() classify.Grammar {
	var g classify.Grammar
	if lc := string(c.Comments.LineComment); lc != "" {
		g.LineComments = []string{lc}
	}
	if bc := c.Comments.BlockComment; len(bc) == 2 && bc[0] != "" && bc[1] != "" {
		g.BlockComments = []classify.Pair{{Begin: bc[0], End: bc[1]}}
	}
	return g
}

func decodeJSONC(raw []byte, v any) error {
	std, err := hujson.Standardize(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(std, v)
}
