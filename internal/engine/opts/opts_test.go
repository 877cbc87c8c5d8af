package opts

import (
	"math"
	"testing"

	"github.com/phyten/codecount/internal/engine"
)

func TestParseBoolVariants(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", "yes", "On"}
	falseVals := []string{"0", "false", "FALSE", "no", "OFF"}

	for _, tc := range trueVals {
		t.Run("true/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if !got {
				t.Fatalf("ParseBool(%q) = false, want true", tc)
			}
		})
	}

	for _, tc := range falseVals {
		t.Run("false/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if got {
				t.Fatalf("ParseBool(%q) = true, want false", tc)
			}
		})
	}

	if _, err := ParseBool("maybe", "flag"); err == nil {
		t.Fatal("ParseBool should reject unknown values")
	}
}

func TestParseIntInRange(t *testing.T) {
	got, err := ParseIntInRange("42", "max_open_files", 1, 64)
	if err != nil {
		t.Fatalf("ParseIntInRange error: %v", err)
	}
	if got != 42 {
		t.Fatalf("ParseIntInRange = %d, want 42", got)
	}

	if _, err := ParseIntInRange("-1", "max_file_bytes", 0, math.MinInt); err == nil {
		t.Fatal("ParseIntInRange should reject negative values when min=0")
	}

	if _, err := ParseIntInRange("65", "max_open_files", 1, 64); err == nil {
		t.Fatal("ParseIntInRange should reject values above max")
	}
}

func TestDefaultsAreValid(t *testing.T) {
	o := Defaults("/repo")
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if !o.UseGitignore || !o.IgnoreUnsupported {
		t.Fatalf("gitignore と未対応ファイル除外は既定で有効のはずです: %+v", o)
	}
	if len(o.Include) != 1 || o.Include[0] != "**/*" {
		t.Fatalf("default include mismatch: %v", o.Include)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	o := engine.Options{Discovery: " GIT ", Encoding: "Shift_JIS", MaxOpenFiles: 8, Include: []string{" ", ""}}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if o.Discovery != engine.DiscoveryGit {
		t.Fatalf("Discovery normalized incorrectly: %q", o.Discovery)
	}
	if o.Encoding != "shift_jis" {
		t.Fatalf("Encoding normalized incorrectly: %q", o.Encoding)
	}
	if o.TargetDir != "." {
		t.Fatalf("TargetDir should default to '.': %q", o.TargetDir)
	}
	if len(o.Include) != 1 || o.Include[0] != "**/*" {
		t.Fatalf("empty include should fall back to the default: %v", o.Include)
	}

	cases := map[string]engine.Options{
		"discovery": {Discovery: "svn", MaxOpenFiles: 4},
		"jobs":      {MaxOpenFiles: 1024},
		"bytes":     {MaxOpenFiles: 4, MaxFileBytes: -1},
		"encoding":  {MaxOpenFiles: 4, Encoding: "no-such-charset"},
		"include":   {MaxOpenFiles: 4, Include: []string{"src/[a-"}},
		"exclude":   {MaxOpenFiles: 4, Exclude: []string{"{a,b"}},
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			if err := NormalizeAndValidate(&bad); err == nil {
				t.Fatalf("NormalizeAndValidate should fail: %+v", bad)
			}
		})
	}
}

func TestNormalizePreview(t *testing.T) {
	for in, want := range map[string]string{"": "", "none": "", "MD": "markdown", "csv": "csv", "txt": "text"} {
		got, err := NormalizePreview(in)
		if err != nil || got != want {
			t.Fatalf("NormalizePreview(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := NormalizePreview("html"); err == nil {
		t.Fatal("html preview should be rejected")
	}
}

func TestSplitMulti(t *testing.T) {
	vals := []string{"a,b", " c ", "", ",d"}
	got := SplitMulti(vals)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitMulti length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("SplitMulti mismatch at %d: got=%q want=%q", i, got[i], v)
		}
	}
}
