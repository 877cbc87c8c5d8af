// Package execx runs external commands (git) behind a small interface so
// discovery can be tested without the real binary.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner は外部コマンドを実行するための最小インターフェースです。
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// CommandRunner は exec.CommandContext を利用したデフォルト実装です。
type CommandRunner struct{}

// Run は指定された作業ディレクトリでコマンドを実行し、標準出力・標準エラーを収集します。
func (CommandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// IsNotFound はコマンドが見つからない場合のエラーを判定します。
func IsNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// DefaultRunner は CommandRunner を返します。
func DefaultRunner() Runner {
	return CommandRunner{}
}

// Output runs name through r (DefaultRunner when nil) and returns stdout.
// Failures are wrapped with the command name and the first stderr line.
func Output(ctx context.Context, r Runner, dir, name string, args ...string) ([]byte, error) {
	if r == nil {
		r = DefaultRunner()
	}
	label := name
	if len(args) > 0 {
		label = name + " " + firstWord(args)
	}
	stdout, stderr, err := r.Run(ctx, dir, name, args...)
	if err == nil {
		return stdout, nil
	}
	if IsNotFound(err) {
		return nil, fmt.Errorf("%s: %s not found in PATH: %w", label, name, err)
	}
	if msg := firstLine(stderr); msg != "" {
		return nil, fmt.Errorf("%s: %s: %w", label, msg, err)
	}
	return nil, fmt.Errorf("%s: %w", label, err)
}

// firstWord skips leading `-c key=value` style options so the label names
// the subcommand.
func firstWord(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			i++
			continue
		}
		if !strings.HasPrefix(args[i], "-") {
			return args[i]
		}
	}
	return args[0]
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
