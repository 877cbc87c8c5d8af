package engine

import (
	"strings"
	"testing"
)

func TestBuildPathspecs_DefaultsToDot(t *testing.T) {
	t.Parallel()

	got := buildPathspecs(nil, nil)
	if len(got) != 1 || got[0] != "." {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestBuildPathspecsIncludesAndExcludes(t *testing.T) {
	t.Parallel()

	includes := []string{"src/**", " pkg/*.go ", ":(top)docs"}
	excludes := []string{"vendor/**", ":(exclude)third_party/**", ":!build/**", "  "}

	got := buildPathspecs(includes, excludes)
	want := []string{
		":(glob)src/**",
		":(glob)pkg/*.go",
		":(top)docs",
		":(glob,exclude)vendor/**",
		":(exclude)third_party/**",
		":!build/**",
	}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pathspec %d mismatch: got=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestBuildLsFilesArgsEndsWithPathspecs(t *testing.T) {
	t.Parallel()

	args := buildLsFilesArgs([]string{"**/*"}, nil, true)
	sep := -1
	for i, a := range args {
		if a == "--" {
			sep = i
			break
		}
	}
	if sep < 0 {
		t.Fatalf("missing -- separator: %v", args)
	}
	if got := args[sep+1:]; len(got) != 1 || got[0] != ":(glob)**/*" {
		t.Fatalf("unexpected pathspecs: %v", got)
	}
}

func TestBuildLsFilesArgsFollowsUseGitignore(t *testing.T) {
	t.Parallel()

	has := func(args []string) bool {
		for _, a := range args {
			if a == "--" {
				return false
			}
			if a == "--exclude-standard" {
				return true
			}
		}
		return false
	}
	if !has(buildLsFilesArgs(nil, nil, true)) {
		t.Fatal("--exclude-standard expected when gitignore is honoured")
	}
	args := buildLsFilesArgs(nil, nil, false)
	if has(args) {
		t.Fatalf("--exclude-standard must be omitted: %v", args)
	}
	if !strings.Contains(strings.Join(args, " "), "ls-files -z --cached --others -- .") {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSplitNUL(t *testing.T) {
	t.Parallel()

	got := splitNUL([]byte("a.go\x00dir/b c.py\x00\x00"))
	if len(got) != 2 || got[0] != "a.go" || got[1] != "dir/b c.py" {
		t.Fatalf("unexpected split: %#v", got)
	}
}
