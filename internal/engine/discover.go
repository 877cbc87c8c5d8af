package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phyten/codecount/internal/execx"
)

// Discover lists the files to count, slash-separated and relative to
// opts.TargetDir, sorted.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	root, err := filepath.Abs(opts.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("target dir: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("target dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target dir: %s is not a directory", opts.TargetDir)
	}
	outRel := outputDirRel(root, opts.OutputDir)

	var files []string
	switch opts.Discovery {
	case DiscoveryGit:
		files, err = discoverGit(ctx, root, opts)
	case DiscoveryWalk, "":
		files, err = discoverWalk(ctx, root, outRel, opts.UseGitignore)
	default:
		return nil, fmt.Errorf("invalid discovery mode: %s", opts.Discovery)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		if outRel != "" && (f == outRel || strings.HasPrefix(f, outRel+"/")) {
			continue
		}
		ok, err := selectPath(f, opts.Include, opts.Exclude)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}

// selectPath reports whether p matches any include glob and no exclude glob.
// An empty include list selects everything.
func selectPath(p string, includes, excludes []string) (bool, error) {
	matched := len(includes) == 0
	for _, pat := range includes {
		ok, err := doublestar.Match(pat, p)
		if err != nil {
			return false, fmt.Errorf("include %q: %w", pat, err)
		}
		if ok {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	for _, pat := range excludes {
		ok, err := doublestar.Match(pat, p)
		if err != nil {
			return false, fmt.Errorf("exclude %q: %w", pat, err)
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

// outputDirRel returns the output directory relative to root when it lies
// strictly inside it, "" otherwise.
func outputDirRel(root, outputDir string) string {
	if strings.TrimSpace(outputDir) == "" {
		return ""
	}
	abs := outputDir
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, outputDir)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

func discoverGit(ctx context.Context, root string, opts Options) ([]string, error) {
	stdout, err := execx.Output(ctx, opts.Runner, root, "git", buildLsFilesArgs(opts.Include, opts.Exclude, opts.UseGitignore)...)
	if err != nil {
		return nil, err
	}
	return splitNUL(stdout), nil
}

// gitignoreStack holds the compiled .gitignore of every directory seen so far.
type gitignoreStack map[string]*ignore.GitIgnore

func (s gitignoreStack) load(root, dir string) error {
	p := filepath.Join(root, filepath.FromSlash(dir), ".gitignore")
	gi, err := ignore.CompileIgnoreFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("gitignore %s: %w", p, err)
	}
	s[dir] = gi
	return nil
}

// ignored checks rel against the .gitignore of each ancestor directory, with
// the path made relative to the directory holding that file.
func (s gitignoreStack) ignored(rel string, isDir bool) bool {
	if len(s) == 0 {
		return false
	}
	if isDir {
		rel += "/"
	}
	dir := path.Dir(strings.TrimSuffix(rel, "/"))
	for {
		if gi, ok := s[dir]; ok {
			sub := rel
			if dir != "." {
				sub = strings.TrimPrefix(rel, dir+"/")
			}
			if gi.MatchesPath(sub) {
				return true
			}
		}
		if dir == "." {
			return false
		}
		dir = path.Dir(dir)
	}
}

func discoverWalk(ctx context.Context, root, outRel string, useGitignore bool) ([]string, error) {
	stack := gitignoreStack{}
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "." {
				if useGitignore {
					return stack.load(root, rel)
				}
				return nil
			}
			if d.Name() == ".git" || rel == outRel {
				return filepath.SkipDir
			}
			if useGitignore {
				if stack.ignored(rel, true) {
					return filepath.SkipDir
				}
				return stack.load(root, rel)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if useGitignore && stack.ignored(rel, false) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
