// Package gitremote derives web URLs for the files of a git checkout so the
// Markdown report can link each row to its blob page.
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/phyten/codecount/internal/execx"
)

// DefaultRemote は link_base=git で参照するリモート名
const DefaultRemote = "origin"

// Info はリモート URL から抽出したホスト・オーナー・リポジトリ情報です。
type Info struct {
	Host   string
	Owner  string
	Repo   string
	Scheme string
}

// Detect reads remote.<name>.url of the checkout at dir and parses it.
func Detect(ctx context.Context, runner execx.Runner, dir, remote string) (Info, error) {
	if strings.TrimSpace(remote) == "" {
		remote = DefaultRemote
	}
	key := "remote." + remote + ".url"
	out, err := execx.Output(ctx, runner, dir, "git", "config", "--get", key)
	if err != nil {
		return Info{}, err
	}
	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return Info{}, fmt.Errorf("%s is empty", key)
	}
	return Parse(raw)
}

// Head returns the commit hash checked out at dir.
func Head(ctx context.Context, runner execx.Runner, dir string) (string, error) {
	out, err := execx.Output(ctx, runner, dir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	sha := strings.TrimSpace(string(out))
	if sha == "" {
		return "", errors.New("git rev-parse HEAD: empty output")
	}
	return sha, nil
}

// Parse は scp 形式 (git@host:owner/repo.git) と ssh/git/http(s) URL を解析します。
func Parse(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Info{}, errors.New("empty remote url")
	}
	if !strings.Contains(raw, "://") {
		// git@github.com:owner/repo.git
		hostPart, pathPart, ok := strings.Cut(raw, ":")
		if !ok {
			return Info{}, fmt.Errorf("invalid ssh remote: %s", raw)
		}
		if i := strings.LastIndexByte(hostPart, '@'); i >= 0 {
			hostPart = hostPart[i+1:]
		}
		owner, repo, err := splitPath(pathPart)
		if err != nil {
			return Info{}, err
		}
		return Info{Host: strings.ToLower(strings.TrimSpace(hostPart)), Owner: owner, Repo: repo}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "ssh", "git", "http", "https":
	default:
		return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
	}
	cleaned, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote path: %w", err)
	}
	owner, repo, err := splitPath(cleaned)
	if err != nil {
		return Info{}, err
	}
	info := Info{Host: strings.ToLower(u.Host), Owner: owner, Repo: repo}
	if scheme == "http" || scheme == "https" {
		info.Scheme = scheme
	}
	return info, nil
}

func splitPath(p string) (string, string, error) {
	cleaned := strings.TrimSpace(p)
	cleaned = strings.TrimSuffix(cleaned, ".git")
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	cleaned = strings.Trim(cleaned, "/")
	if cleaned == "" {
		return "", "", errors.New("missing owner/repo in remote url")
	}
	segments := strings.Split(cleaned, "/")
	if len(segments) < 2 {
		return "", "", errors.New("remote url must include owner and repo")
	}
	// GitLab のサブグループは owner 側に残す
	owner := strings.Join(segments[:len(segments)-1], "/")
	repo := segments[len(segments)-1]
	if owner == "" || repo == "" || strings.Contains(owner, "//") {
		return "", "", errors.New("invalid owner or repo in remote url")
	}
	return owner, repo, nil
}

// NormalizedScheme は http のときだけ http を返し、それ以外は https
func (i Info) NormalizedScheme() string {
	if strings.EqualFold(i.Scheme, "http") {
		return "http"
	}
	return "https"
}

// WebURL はリポジトリのブラウズ用ベース URL を返します。
func (i Info) WebURL() string {
	host := strings.TrimSuffix(i.Host, "/")
	return fmt.Sprintf("%s://%s/%s/%s", i.NormalizedScheme(), host, BlobPath(i.Owner), url.PathEscape(i.Repo))
}

// BlobBase is the prefix that turns a slash-relative path into its blob
// page at rev (GitHub/GitLab/Gitea layout).
func (i Info) BlobBase(rev string) string {
	return i.WebURL() + "/blob/" + url.PathEscape(rev) + "/"
}

// LinkBase resolves the blob base of the checkout at dir. subdir is the
// target directory relative to the repository root ("" or "." for the root).
func LinkBase(ctx context.Context, runner execx.Runner, dir, subdir string) (string, error) {
	info, err := Detect(ctx, runner, dir, DefaultRemote)
	if err != nil {
		return "", err
	}
	sha, err := Head(ctx, runner, dir)
	if err != nil {
		return "", err
	}
	base := info.BlobBase(sha)
	subdir = strings.Trim(strings.ReplaceAll(subdir, "\\", "/"), "/")
	if subdir != "" && subdir != "." {
		base += BlobPath(subdir) + "/"
	}
	return base, nil
}

// Prefix returns the directory of dir relative to its repository root, as
// reported by `git rev-parse --show-prefix`.
func Prefix(ctx context.Context, runner execx.Runner, dir string) (string, error) {
	out, err := execx.Output(ctx, runner, dir, "git", "rev-parse", "--show-prefix")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// BlobPath escapes each segment of a slash-separated path.
func BlobPath(file string) string {
	parts := strings.Split(strings.ReplaceAll(file, "\\", "/"), "/")
	for idx, part := range parts {
		parts[idx] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
