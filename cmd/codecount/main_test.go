package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/codecount/internal/output"
	"github.com/phyten/codecount/internal/report"
)

const goSource = "package main\n\n// entry point\nfunc main() {}\n"

type cliResult struct {
	stdout string
	stderr string
	opened []string
	err    error
}

func runCLI(t *testing.T, env map[string]string, args ...string) cliResult {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	if _, ok := env["HOME"]; !ok {
		env["HOME"] = t.TempDir()
	}
	var stdout, stderr bytes.Buffer
	var opened []string
	a := &app{
		stdout:  &stdout,
		stderr:  &stderr,
		getenv:  func(k string) string { return env[k] },
		environ: func() []string { return nil },
		now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		open: func(p string) error {
			opened = append(opened, p)
			return nil
		},
	}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), opened: opened, err: err}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func TestCountはレポートを書き出す(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":     goSource,
		"sub/util.py": "# helper\nx = 1\n",
		"notes.xyz":   "???\n",
	})

	res := runCLI(t, nil, "count", root, "--no-progress")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "go")
	assert.Contains(t, res.stdout, "python")
	assert.NotContains(t, res.stdout, "notes.xyz")

	for _, name := range []string{"results.txt", "results.csv", "results.md", "results.json"} {
		assert.FileExists(t, filepath.Join(root, ".codecount", name))
	}
	snap, err := output.LoadSnapshot(filepath.Join(root, ".codecount", "results.json"))
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Total.Files)
	assert.Equal(t, 3, snap.Total.Code)
	assert.Equal(t, 2, snap.Total.Comment)
	assert.Equal(t, 1, snap.Total.Blank)
	assert.Contains(t, res.stderr, "msg=wrote")
}

func TestCountのフラグは設定ファイルより優先される(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":         goSource,
		".codecount.yaml": "output:\n  output_dir: reports\n  output_csv: false\n  output_markdown: false\n",
	})

	res := runCLI(t, nil, "count", root, "--no-progress", "--markdown")
	require.NoError(t, res.err, res.stderr)
	assert.FileExists(t, filepath.Join(root, "reports", "results.txt"))
	assert.FileExists(t, filepath.Join(root, "reports", "results.md"))
	assert.NoFileExists(t, filepath.Join(root, "reports", "results.csv"))
	assert.NoDirExists(t, filepath.Join(root, ".codecount"))
}

func TestCountは環境変数を読む(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":     goSource,
		"sub/util.py": "# helper\n",
	})
	env := map[string]string{"CODECOUNT_EXCLUDE": "**/*.py", "CODECOUNT_OUTPUT_DIR": "out"}

	res := runCLI(t, env, "count", root, "--no-progress", "--ndjson")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, `"filename":"main.go"`)
	assert.NotContains(t, res.stdout, "util.py")
	assert.FileExists(t, filepath.Join(root, "out", "results.json"))
}

func TestCountのpreviewは書き出したファイルを開く(t *testing.T) {
	root := writeTree(t, map[string]string{"main.go": goSource})

	res := runCLI(t, nil, "count", root, "--no-progress", "--preview", "md")
	require.NoError(t, res.err, res.stderr)
	require.Len(t, res.opened, 1)
	assert.Equal(t, "results.md", filepath.Base(res.opened[0]))
	assert.True(t, filepath.IsAbs(res.opened[0]))
}

func TestCountのpreviewは無効な出力を拒否する(t *testing.T) {
	root := writeTree(t, map[string]string{"main.go": goSource})

	res := runCLI(t, nil, "count", root, "--no-progress", "--preview", "csv", "--csv=false")
	require.Error(t, res.err)
	assert.Empty(t, res.opened)
}

func TestCountのdiffWithは差分ファイルを書き出す(t *testing.T) {
	root := writeTree(t, map[string]string{"main.go": goSource})
	prevPath := filepath.Join(t.TempDir(), "prev.json")
	prev := report.FromResults(root, time.Now(), []report.FileResult{
		{Filename: "main.go", Language: "go"},
	})
	f, err := os.Create(prevPath)
	require.NoError(t, err)
	require.NoError(t, output.WriteJSON(f, prev))
	require.NoError(t, f.Close())

	res := runCLI(t, nil, "count", root, "--no-progress", "--diff-with", prevPath)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Changed")
	assert.Contains(t, res.stdout, "+2")
	assert.FileExists(t, filepath.Join(root, ".codecount", "diff-results.txt"))
}

func TestCountは不正な入力でエラーになる(t *testing.T) {
	root := writeTree(t, map[string]string{"main.go": goSource})
	cases := map[string][]string{
		"discovery": {"count", root, "--discovery", "svn"},
		"jobs":      {"count", root, "--jobs", "0"},
		"glob":      {"count", root, "--include", "[a-"},
		"eol":       {"count", root, "--eol", "cr"},
		"encoding":  {"count", root, "--encoding", "no-such-charset"},
		"color":     {"--color", "sometimes", "count", root},
		"verbose":   {"-v", "-q", "count", root},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			res := runCLI(t, nil, append(args, "--no-progress")...)
			assert.Error(t, res.err)
		})
	}
}

func TestFileはステータス行を出力する(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go": goSource,
		"script":  "# comment\necho hi\n",
		"a.xyz":   "???\n",
	})

	res := runCLI(t, nil, "file", filepath.Join(root, "main.go"))
	require.NoError(t, res.err)
	assert.Equal(t, "Code:2 Comment:1 Blank:1 Total:4\n", res.stdout)

	res = runCLI(t, nil, "file", filepath.Join(root, "a.xyz"))
	require.NoError(t, res.err)
	assert.Equal(t, "Unsupported\n", res.stdout)

	res = runCLI(t, nil, "file", "--lang", "sh", filepath.Join(root, "script"))
	require.NoError(t, res.err)
	assert.Equal(t, "Code:1 Comment:1 Blank:0 Total:2\n", res.stdout)

	res = runCLI(t, nil, "file", "--lang", "klingon", filepath.Join(root, "script"))
	assert.Error(t, res.err)
}

func TestFileは設定ファイルの言語を使う(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.kl":      "-- comment\ncode\n",
		"conf.yaml": "languages:\n  - id: klingon\n    extensions: [.kl]\n    line_comments: [\"--\"]\n",
	})

	res := runCLI(t, nil, "--config", filepath.Join(root, "conf.yaml"), "file", filepath.Join(root, "a.kl"))
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "Code:1 Comment:1 Blank:0 Total:2\n", res.stdout)
}

func TestDiffは2つのjsonを比較する(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, rows []report.FileResult) string {
		p := filepath.Join(dir, name)
		f, err := os.Create(p)
		require.NoError(t, err)
		require.NoError(t, output.WriteJSON(f, report.FromResults(".", time.Now(), rows)))
		require.NoError(t, f.Close())
		return p
	}
	old := write("old.json", []report.FileResult{{Filename: "a.go", Language: "go"}})
	cur := write("new.json", []report.FileResult{{Filename: "a.go", Language: "go"}, {Filename: "b.go", Language: "go"}})

	res := runCLI(t, nil, "diff", old, cur, "--format", "ndjson")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "b.go")

	res = runCLI(t, nil, "diff", old, cur, "--format", "yaml")
	assert.Error(t, res.err)
}

func TestLangsは登録言語を一覧する(t *testing.T) {
	res := runCLI(t, nil, "langs")
	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, res.stdout, ".go")
	assert.Contains(t, res.stdout, "aliases: sh")
}

func TestCountのlinkBaseはMarkdownのリンクに使われる(t *testing.T) {
	root := writeTree(t, map[string]string{"src/main.go": goSource})

	res := runCLI(t, nil, "count", root, "--no-progress", "--link-base", "https://example.com/o/r/blob/main/")
	require.NoError(t, res.err, res.stderr)
	md, err := os.ReadFile(filepath.Join(root, ".codecount", "results.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "(https://example.com/o/r/blob/main/src/main.go)")
}
