package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/expand"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	AlignLeft   = "left"
	AlignRight  = "right"
	AlignCenter = "center"
)

// Theme holds every presentation option. Lengths are in pixels of the viewport.
type Theme struct {
	// font files. Empty means the bundled Latin Modern faces
	Font       string `yaml:"font,omitempty" json:"font,omitempty"`
	FontBold   string `yaml:"fontBold,omitempty" json:"fontBold,omitempty"`
	FontItalic string `yaml:"fontItalic,omitempty" json:"fontItalic,omitempty"`
	FontCode   string `yaml:"fontCode,omitempty" json:"fontCode,omitempty"`

	FontSizeText         float64 `yaml:"fontSizeText,omitempty" json:"fontSizeText,omitempty"`
	FontSizeHeaderSlides float64 `yaml:"fontSizeHeaderSlides,omitempty" json:"fontSizeHeaderSlides,omitempty"`
	FontSizeHeaderTitle  float64 `yaml:"fontSizeHeaderTitle,omitempty" json:"fontSizeHeaderTitle,omitempty"`

	TextColor                 Color `yaml:"textColor,omitempty" json:"textColor,omitempty"`
	HeadingColor              Color `yaml:"headingColor,omitempty" json:"headingColor,omitempty"`
	BackgroundColor           Color `yaml:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	BlockquoteBackgroundColor Color `yaml:"blockquoteBackgroundColor,omitempty" json:"blockquoteBackgroundColor,omitempty"`
	CodeBackgroundColor       Color `yaml:"codeBackgroundColor,omitempty" json:"codeBackgroundColor,omitempty"`
	// chroma style name
	CodeTheme string `yaml:"codeTheme,omitempty" json:"codeTheme,omitempty"`

	// multiplier of the font size
	LineHeight       float64 `yaml:"lineHeight,omitempty" json:"lineHeight,omitempty"`
	HorizontalOffset float64 `yaml:"horizontalOffset,omitempty" json:"horizontalOffset,omitempty"`
	VerticalOffset   float64 `yaml:"verticalOffset,omitempty" json:"verticalOffset,omitempty"`
	// left, right, anything else is center
	Align  string `yaml:"align,omitempty" json:"align,omitempty"`
	Bullet string `yaml:"bullet,omitempty" json:"bullet,omitempty"`

	BackgroundImage string `yaml:"backgroundImage,omitempty" json:"backgroundImage,omitempty"`

	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
}

// DefaultTheme returns a theme with every option set.
func DefaultTheme() *Theme {
	return &Theme{
		FontSizeText:              36,
		FontSizeHeaderSlides:      48,
		FontSizeHeaderTitle:       72,
		TextColor:                 MustColor("#2b2b2b"),
		HeadingColor:              MustColor("#1d3557"),
		BackgroundColor:           MustColor("#fdfdfd"),
		BlockquoteBackgroundColor: MustColor("#e8eef4"),
		CodeBackgroundColor:       MustColor("#f3f3f3"),
		CodeTheme:                 "github",
		LineHeight:                1.4,
		HorizontalOffset:          48,
		VerticalOffset:            24,
		Align:                     AlignCenter,
		Bullet:                    "• ",
		Width:                     1280,
		Height:                    720,
	}
}

// LoadTheme overlays the theme file at p on top of DefaultTheme.
// Relative font and background image paths are resolved against the theme file's directory.
func LoadTheme(p string) (_ *Theme, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	t := DefaultTheme()
	if p == "" {
		return t, nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}
	if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal theme %s: %w", p, err)
	}
	dir, err := filepath.Abs(filepath.Dir(p))
	if err != nil {
		return nil, err
	}
	for _, f := range []*string{&t.Font, &t.FontBold, &t.FontItalic, &t.FontCode, &t.BackgroundImage} {
		if *f == "" || filepath.IsAbs(*f) || isURL(*f) {
			continue
		}
		*f = filepath.Join(dir, *f)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ResolveTheme returns the theme file for name.
// A name without a path separator or extension is looked up in $XDG_DATA_HOME/slider/themes.
func ResolveTheme(name, baseDir string) string {
	if name == "" {
		return ""
	}
	if !strings.ContainsRune(name, filepath.Separator) && filepath.Ext(name) == "" {
		for _, ext := range []string{".yml", ".yaml"} {
			p := filepath.Join(DataHomePath(), "themes", name+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	if filepath.IsAbs(name) || baseDir == "" {
		return name
	}
	return filepath.Join(baseDir, name)
}

// Validate reports options that cannot produce a layout.
func (t *Theme) Validate() error {
	switch {
	case t.Width <= 0 || t.Height <= 0:
		return fmt.Errorf("invalid viewport size %vx%v", t.Width, t.Height)
	case t.FontSizeText <= 0 || t.FontSizeHeaderSlides <= 0 || t.FontSizeHeaderTitle <= 0:
		return fmt.Errorf("font sizes must be positive")
	case t.LineHeight <= 0:
		return fmt.Errorf("invalid lineHeight %v", t.LineHeight)
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Color is a theme color written as "#rgb" or "#rrggbb".
type Color struct {
	colorful.Color
}

// ParseColor parses a hex color.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{c}, nil
}

// MustColor is like ParseColor but panics on error.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Color) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(c.Hex())
}
