/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider/config"
	"github.com/k1LoW/slider/handler/dot"
	"github.com/k1LoW/slider/version"
	"github.com/k1LoW/tail"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

var (
	profile string
	verbose bool
)

// tb keeps the latest JSON log lines for error.json.
var tb = tail.New(100)

var rootCmd = &cobra.Command{
	Use:          "slider",
	Short:        "slider is a tool for presenting decks written in Markdown",
	Long:         `slider is a tool for presenting decks written in Markdown.`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
}

type errorData struct {
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Write stack trace log to state directory
		var latestLogs []any
		for _, line := range tb.Lines() {
			if strings.Contains(line, `"level":"DEBUG"`) && strings.Contains(line, `"request":`) {
				// Skip debug logs that contain request details
				continue
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(line), &m); err != nil {
				latestLogs = append(latestLogs, line)
			} else {
				latestLogs = append(latestLogs, m)
			}
		}
		d := &errorData{
			LatestLogs:  latestLogs,
			StackTraces: errors.StackTraces(err),
			CreatedAt:   time.Now(),
			Version:     version.Version,
			Revision:    version.Revision,
		}
		b, err := json.Marshal(d)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			dumpPath := filepath.Join(config.StateHomePath(), "error.json")
			if err := os.MkdirAll(filepath.Dir(dumpPath), 0o700); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", filepath.Dir(dumpPath), err)
			} else if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to write error.json to %s: %v\n", dumpPath, err)
			}
		}
		os.Exit(1)
	}
}

// newLogger returns a logger writing to the tail buffer, to the dot progress on stdout when progress is set,
// and to stderr when --verbose is set. stop must be called when the command ends.
func newLogger(progress bool) (_ *slog.Logger, stop func(), err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	handlers := []slog.Handler{
		slog.NewJSONHandler(tb, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	stop = func() {}
	if progress && !verbose {
		h, err := dot.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, h)
		stop = h.Stop
	}
	if verbose {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slogmulti.Fanout(handlers...)), stop, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "", "", "profile name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}
