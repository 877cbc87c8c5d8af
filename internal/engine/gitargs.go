package engine

import (
	"path/filepath"
	"strings"
)

// buildLsFilesArgs builds the `git ls-files` invocation. Include globs become
// `:(glob)` pathspecs and excludes `:(glob,exclude)` ones; git applies the
// same `**` semantics as doublestar so the post-filter rarely drops anything.
// useGitignore=false drops --exclude-standard so ignored untracked files are
// listed too.
func buildLsFilesArgs(includes, excludes []string, useGitignore bool) []string {
	args := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--cached", "--others"}
	if useGitignore {
		args = append(args, "--exclude-standard")
	}
	args = append(args, "--")
	args = append(args, buildPathspecs(includes, excludes)...)
	return args
}

func buildPathspecs(includes, excludes []string) []string {
	out := make([]string, 0, len(includes)+len(excludes)+1)
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob)"+trimmed)
	}
	if len(out) == 0 {
		out = append(out, ".")
	}

	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":!") || strings.HasPrefix(trimmed, ":(exclude)") || strings.HasPrefix(trimmed, ":(glob,exclude)") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

// splitNUL splits `-z` output into slash-separated paths.
func splitNUL(out []byte) []string {
	var files []string
	for _, part := range strings.Split(string(out), "\x00") {
		if part == "" {
			continue
		}
		files = append(files, filepath.ToSlash(part))
	}
	return files
}
