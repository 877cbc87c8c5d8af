package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source values reported by Find.
const (
	SourceExplicit = "explicit"
	SourceCwdUp    = "cwd-up"
	SourceXDG      = "xdg"
	SourceHome     = "home"
)

var (
	configFilenames = []string{
		".codecount.yaml",
		".codecount.yml",
		".codecount.toml",
		".codecount.json",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}
)

// Find は設定ファイルを探す。explicitPath (--config / CODECOUNT_CONFIG) が最優先で、
// 次に targetDir から親方向、XDG、ホームの順。見つからなければ空文字を返す。
func Find(targetDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		candidate := explicit
		if !filepath.IsAbs(candidate) {
			cwd, err := os.Getwd()
			if err != nil {
				return "", "", err
			}
			candidate = filepath.Join(cwd, candidate)
		}
		info, err := os.Stat(candidate)
		if err != nil {
			return "", "", err
		}
		if info.IsDir() {
			return "", "", fmt.Errorf("config %q points to a directory", candidate)
		}
		return candidate, SourceExplicit, nil
	}

	start := strings.TrimSpace(targetDir)
	if start == "" {
		start = "."
	}
	absStart, err := filepath.Abs(start)
	if err != nil {
		return "", "", err
	}
	if p, ok := firstExisting(configFilenames, absStart, true); ok {
		return p, SourceCwdUp, nil
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if p, ok := firstExisting(xdgFilenames, filepath.Join(xdgRoot, "codecount"), false); ok {
			return p, SourceXDG, nil
		}
	}
	if homeDir != "" {
		if p, ok := firstExisting(configFilenames, homeDir, false); ok {
			return p, SourceHome, nil
		}
	}
	return "", "", nil
}

// firstExisting returns the first names[i] present in dir, walking up to the
// filesystem root when up is set.
func firstExisting(names []string, dir string, up bool) (string, bool) {
	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if !up || parent == dir {
			return "", false
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
