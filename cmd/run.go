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

	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"
)

var runPage int

var runCmd = &cobra.Command{
	Use:   "run [DECK_FILE]",
	Short: "run the code of a slide",
	Long:  `run the code of a slide and print its output.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.WithStack(err)
		}()
		ctx := cmd.Context()
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()

		s, err := newSession(args[0], logger)
		if err != nil {
			return err
		}
		d, err := s.load(ctx)
		if err != nil {
			return err
		}
		sl, err := d.Slide(runPage - 1)
		if err != nil {
			return err
		}
		code := sl.Code()
		if code == nil {
			return fmt.Errorf("page %d has no code to run", runPage)
		}
		timeout, err := s.cfg.CodeTimeoutDuration()
		if err != nil {
			return err
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		output, err := code.Execute(ctx)
		if err != nil {
			return err
		}
		cmd.Print(output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&runPage, "page", "p", 1, "page whose code is run")
	runCmd.Flags().StringVarP(&themeName, "theme", "", "", "theme file or name")
}
