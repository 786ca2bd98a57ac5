//go:build !js

package slider

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
	"github.com/k1LoW/slider/template"
)

// Execute writes the code to a temporary directory, runs the language's command there through
// the user's shell and returns the combined stdout and stderr.
// A non-zero exit status is not an error, its output is the result.
func (c *ExecutableCode) Execute(ctx context.Context) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	tmp, err := os.MkdirTemp("", "slider-code-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	f := filepath.Join(tmp, "main"+c.lang.ext)
	if err := os.WriteFile(f, []byte(c.Code), 0600); err != nil {
		return "", fmt.Errorf("failed to write code: %w", err)
	}

	store := map[string]any{
		"file": shellQuote(f),
		"lang": c.Language,
		"env":  template.EnvironToMap(),
	}
	cmdStr, err := template.Expand(c.lang.command, store)
	if err != nil {
		return "", fmt.Errorf("failed to expand command template: %w", err)
	}
	sh, args, err := buildCommand(cmdStr)
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}

	cmd := exec.CommandContext(ctx, sh, args...)
	cmd.Env = os.Environ()
	cmd.Dir = tmp
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return out.String(), fmt.Errorf("code execution canceled: %w", ctx.Err())
		}
		if isExitError(err) {
			return out.String(), nil
		}
		return "", fmt.Errorf("failed to run %s: %w", c.Language, err)
	}
	return out.String(), nil
}

// isExitError reports whether err, possibly wrapped, is a non-zero exit status.
func isExitError(err error) bool {
	var exitErr *osexec.ExitError
	return stderrors.As(err, &exitErr)
}
