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
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider"
	"github.com/k1LoW/slider/render"
	"github.com/spf13/cobra"
)

var (
	out  string
	page string
)

var exportCmd = &cobra.Command{
	Use:   "export [DECK_FILE]",
	Short: "export deck to PDF or PNG",
	Long: `export deck to PDF or PNG.

If the output ends with .pdf, the selected slides are written one per page.
Otherwise every selected slide is written as a PNG file.
A directory output gets slide-NN.png files, a .png output with several slides gets NAME-NN.png files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.WithStack(err)
		}()
		ctx := cmd.Context()
		logger, stop, err := newLogger(true)
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
		pages, err := pageToPages(page, d.Len())
		if err != nil {
			return err
		}
		r, err := render.New(s.theme, render.WithLogger(logger))
		if err != nil {
			return err
		}

		if strings.EqualFold(filepath.Ext(out), ".pdf") {
			if err := exportPDF(r, d, out, pagesToIndices(pages), s); err != nil {
				return err
			}
		} else {
			if err := exportPNG(r, d, out, pages); err != nil {
				return err
			}
		}
		logger.Info("export completed", slog.String("out", out), slog.Int("pages", len(pages)))
		return nil
	},
}

func exportPDF(r *render.Renderer, d *slider.Deck, p string, indices []int, s *session) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()
	info := render.Info{Title: d.Title()}
	if s.fm != nil {
		info.Author = s.fm.Author
	}
	if err := r.WritePDF(f, d, indices, info); err != nil {
		return err
	}
	return f.Close()
}

func exportPNG(r *render.Renderer, d *slider.Deck, p string, pages []int) error {
	for _, n := range pages {
		dst := pngPath(p, n, len(pages))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := writePNGFile(r, d, dst, n-1); err != nil {
			return err
		}
	}
	return nil
}

func writePNGFile(r *render.Renderer, d *slider.Deck, dst string, i int) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := r.WritePNG(f, d, i); err != nil {
		return err
	}
	return f.Close()
}

// pngPath returns the file of page n when total pages are exported to p.
func pngPath(p string, n, total int) string {
	if !strings.EqualFold(filepath.Ext(p), ".png") {
		return filepath.Join(p, fmt.Sprintf("slide-%02d.png", n))
	}
	if total == 1 {
		return p
	}
	return fmt.Sprintf("%s-%02d.png", strings.TrimSuffix(p, filepath.Ext(p)), n)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&out, "out", "o", "deck.pdf", "output file (.pdf or .png) or directory")
	exportCmd.Flags().StringVarP(&page, "page", "p", "", "pages to export, e.g. 1,3-5")
	exportCmd.Flags().StringVarP(&themeName, "theme", "", "", "theme file or name")
}
