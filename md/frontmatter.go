package md

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
)

// Frontmatter is the decoded leading metadata header of a document.
type Frontmatter struct {
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	Author    string `yaml:"author,omitempty" json:"author,omitempty"`
	Theme     string `yaml:"theme,omitempty" json:"theme,omitempty"`         // theme file, relative to the document
	Automatic string `yaml:"automatic,omitempty" json:"automatic,omitempty"` // auto-advance duration, e.g. "10s"
}

// AutomaticDuration returns the parsed auto-advance duration. Zero means manual navigation.
func (fm *Frontmatter) AutomaticDuration() (time.Duration, error) {
	if fm == nil || fm.Automatic == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(fm.Automatic)
	if err != nil {
		return 0, fmt.Errorf("invalid automatic duration %q: %w", fm.Automatic, err)
	}
	return d, nil
}

// ParseFrontmatter decodes the metadata header at the start of text.
// It returns nil when there is no header or it cannot be decoded.
func ParseFrontmatter(text string) *Frontmatter {
	body, ok := header(StripComments(text))
	if !ok {
		return nil
	}
	fm := &Frontmatter{}
	if err := yaml.Unmarshal([]byte(body), fm); err != nil {
		return nil
	}
	return fm
}

// ApplyFrontmatterToMD updates or creates a markdown file with frontmatter
func ApplyFrontmatterToMD(mdFile, title, theme string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	// Read existing content or create empty content
	var content []byte
	if c, err := os.ReadFile(mdFile); err == nil {
		content = c
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read file: %w", err)
	}

	const fmSep = "---\n"

	var frontmatter = make(map[string]any)
	var bodyContent = content

	if bytes.HasPrefix(content, []byte(fmSep)) {
		// May have frontmatter, parse it
		stuffs := bytes.SplitN(content, []byte(fmSep), 3)
		if len(stuffs) == 3 {
			var fm = make(map[string]any)
			if err := yaml.Unmarshal(stuffs[1], &fm); err == nil {
				frontmatter = fm
				bodyContent = stuffs[2]
			}
		}
	}

	if title != "" {
		frontmatter["title"] = title
	}
	if theme != "" {
		frontmatter["theme"] = theme
	}
	if len(frontmatter) == 0 {
		// the header needs at least one `key: value` line to be recognized
		frontmatter["title"] = "Untitled"
	}

	frontmatterYAML, err := yaml.Marshal(frontmatter)
	if err != nil {
		return fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	frontmatterYAML = bytes.TrimSpace(frontmatterYAML)

	var newContent bytes.Buffer
	newContent.WriteString(fmSep)
	newContent.Write(frontmatterYAML)
	newContent.WriteString("\n")
	newContent.WriteString(fmSep)
	if len(bodyContent) == 0 {
		newContent.WriteString("\n# " + titleOr(title) + "\n")
	} else {
		newContent.Write(bodyContent)
	}

	dir := filepath.Dir(mdFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(mdFile, newContent.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func titleOr(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}
