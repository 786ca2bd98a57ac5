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
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider"
	"github.com/k1LoW/slider/present"
	"github.com/k1LoW/slider/render"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	automatic time.Duration
	listen    string
	watch     bool
	noOpen    bool
)

var presentCmd = &cobra.Command{
	Use:   "present [DECK_FILE]",
	Short: "present deck in the browser",
	Long: `present deck in the browser.

Use the arrow keys, Space, Home and End to navigate, and r to run the code of the active slide.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.WithStack(err)
		}()
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()

		s, err := newSession(args[0], logger)
		if err != nil {
			return err
		}
		var opts []slider.Option
		if cmd.Flags().Changed("automatic") {
			opts = append(opts, slider.WithAutomatic(automatic))
		}
		loader := func(ctx context.Context) (*slider.Deck, error) {
			return s.load(ctx, opts...)
		}
		d, err := loader(ctx)
		if err != nil {
			return err
		}
		r, err := render.New(s.theme, render.WithLogger(logger))
		if err != nil {
			return err
		}
		popts := []present.Option{
			present.WithLogger(logger),
			present.WithFPS(s.cfg.FPS),
			present.WithLoader(loader),
		}
		if watch {
			popts = append(popts, present.WithWatch(s.path))
		}
		p, err := present.New(d, r, popts...)
		if err != nil {
			return err
		}

		addr := s.cfg.Listen
		if listen != "" {
			addr = listen
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		url := fmt.Sprintf("http://%s/", ln.Addr().String())
		cmd.Println(url)
		if !noOpen {
			if err := browser.OpenURL(url); err != nil {
				cmd.PrintErrf("failed to open the browser: %v\n", err)
			}
		}
		return p.Serve(ctx, ln)
	},
}

func init() {
	rootCmd.AddCommand(presentCmd)
	presentCmd.Flags().DurationVarP(&automatic, "automatic", "a", 0, "advance to the next slide after this duration (0 disables)")
	presentCmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, 127.0.0.1:8080)")
	presentCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the deck when the file changes")
	presentCmd.Flags().BoolVarP(&noOpen, "no-open", "", false, "do not open the browser")
	presentCmd.Flags().StringVarP(&themeName, "theme", "", "", "theme file or name")
}
