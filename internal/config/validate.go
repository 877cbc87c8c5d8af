package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/codecount/internal/engine/opts"
	"github.com/phyten/codecount/internal/output"
	"github.com/phyten/codecount/internal/termcolor"
)

// CanonicalizeEOL maps every accepted spelling to "lf" or "crlf".
func CanonicalizeEOL(raw string) (string, error) {
	seq, err := output.ParseEOL(raw)
	if err != nil {
		return "", err
	}
	if seq == "\r\n" {
		return "crlf", nil
	}
	return "lf", nil
}

func CanonicalizeColor(raw string) (string, error) {
	mode, err := termcolor.ParseMode(raw)
	if err != nil {
		return "", err
	}
	return mode.String(), nil
}

func NormalizeOutput(values OutputSettings) (OutputSettings, error) {
	var err error
	values.OutputDir = strings.TrimSpace(values.OutputDir)
	if values.OutputDir == "" {
		return values, fmt.Errorf("output_dir must not be empty")
	}
	values.DiffWith = strings.TrimSpace(values.DiffWith)
	values.LinkBase = strings.TrimSpace(values.LinkBase)

	values.EOL, err = CanonicalizeEOL(values.EOL)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	values.Preview, err = engineopts.NormalizePreview(values.Preview)
	if err != nil {
		return values, err
	}
	if values.Preview != "" && !values.writes(values.Preview) {
		return values, fmt.Errorf("preview %s requires output_%s", values.Preview, values.Preview)
	}
	return values, nil
}

func (s OutputSettings) writes(format string) bool {
	switch format {
	case "text":
		return s.OutputText
	case "csv":
		return s.OutputCSV
	case "markdown":
		return s.OutputMarkdown
	}
	return false
}
