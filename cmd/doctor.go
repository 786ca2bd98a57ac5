package cmd

import (
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/k1LoW/slider"
	"github.com/k1LoW/slider/config"
	"github.com/k1LoW/slider/render"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check slider environment and configuration",
	Long:  `Check slider environment and configuration to ensure everything is set up correctly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Color setup
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file (optional)
		cmd.Print("🔧 Checking configuration file ... ")
		cfg, err := config.Load(profile)
		if err != nil {
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			cmd.Println()
			red.Println("⚠️  Setup is incomplete.")
			return nil
		}
		if _, err := cfg.CodeTimeoutDuration(); err != nil {
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Config directory: %s\n", config.ConfigPath())
		}

		// 2. Check theme
		cmd.Print("🎨 Checking theme ... ")
		theme := config.DefaultTheme()
		if cfg.Theme == "" {
			green.Println("✓ DEFAULT")
		} else {
			p := config.ResolveTheme(cfg.Theme, config.ConfigPath())
			theme, err = config.LoadTheme(p)
			if err != nil {
				red.Println("✗ THEME ERROR")
				cmd.Printf("   Error loading theme %s: %v\n", p, err)
				theme = config.DefaultTheme()
				allOK = false
			} else {
				green.Println("✓ OK")
				cmd.Printf("   Theme file: %s\n", p)
			}
		}

		// 3. Check fonts
		cmd.Print("🔤 Checking fonts ... ")
		if _, err := render.New(theme); err != nil {
			red.Println("✗ FONT ERROR")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
		}

		// 4. Check interpreters (optional)
		cmd.Println("🏃 Checking interpreters ...")
		for _, lang := range slider.SupportedLanguages() {
			tmpl, _ := slider.InterpreterCommand(lang)
			if v, ok := cfg.Interpreters[lang]; ok {
				tmpl = v
			}
			cmd.Printf("   %-10s ", lang)
			name := commandName(tmpl)
			if name == "" {
				yellow.Printf("? %s\n", tmpl)
				continue
			}
			if p, err := exec.LookPath(name); err != nil {
				yellow.Printf("✗ %s not found\n", name)
			} else {
				green.Printf("✓ %s\n", p)
			}
		}
		if sh := os.Getenv("SHELL"); sh == "" {
			yellow.Println("   $SHELL is not set, /bin/bash or /bin/sh is used")
		}

		// Final message
		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use slider")
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try creating a new deck:")
			yellow.Println("  slider new deck.md")
		} else {
			red.Println("⚠️  Setup is incomplete.")
			cmd.Println("\nPlease fix the issues above to use slider properly.")
		}
		return nil
	},
}

// commandName returns the program a command template starts with.
// It returns "" when the program itself is a template expression.
func commandName(tmpl string) string {
	fields := strings.Fields(tmpl)
	if len(fields) == 0 || strings.Contains(fields[0], "{{") {
		return ""
	}
	return fields[0]
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
