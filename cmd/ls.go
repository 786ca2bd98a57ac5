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
	"fmt"
	"text/tabwriter"

	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [DECK_FILE]",
	Short: "list slides of deck",
	Long:  `list slides of deck: page, title, number of boxes and the language of the runnable code.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.WithStack(err)
		}()
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()

		s, err := newSession(args[0], logger)
		if err != nil {
			return err
		}
		d, err := s.load(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for i, sl := range d.Slides() {
			title := sl.Title()
			if title == "" {
				title = "-"
			}
			lang := "-"
			if c := sl.Code(); c != nil {
				lang = c.Language
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, title, len(sl.Boxes()), lang)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVarP(&themeName, "theme", "", "", "theme file or name")
}
