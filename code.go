package slider

import (
	"errors"
	"sort"
	"strings"
)

// ErrCodeExecutionUnsupported is returned by Execute where external processes cannot be started.
var ErrCodeExecutionUnsupported = errors.New("code execution is not supported on this platform")

type language struct {
	name    string
	ext     string
	command string // template expanded with file, lang and env
}

var languages = []language{
	{name: "bash", ext: ".sh", command: "bash {{file}}"},
	{name: "sh", ext: ".sh", command: "sh {{file}}"},
	{name: "python", ext: ".py", command: "python3 {{file}}"},
	{name: "ruby", ext: ".rb", command: "ruby {{file}}"},
	{name: "perl", ext: ".pl", command: "perl {{file}}"},
	{name: "javascript", ext: ".js", command: "node {{file}}"},
	{name: "go", ext: ".go", command: "go run {{file}}"},
}

var aliases = map[string]string{
	"py":      "python",
	"python3": "python",
	"rb":      "ruby",
	"pl":      "perl",
	"js":      "javascript",
	"node":    "javascript",
	"golang":  "go",
}

func lookupLanguage(tag string) (language, bool) {
	name := strings.ToLower(strings.TrimSpace(tag))
	if a, ok := aliases[name]; ok {
		name = a
	}
	for _, l := range languages {
		if l.name == name {
			return l, true
		}
	}
	return language{}, false
}

// SupportedLanguages returns the canonical names of the runnable languages.
func SupportedLanguages() []string {
	var names []string
	for _, l := range languages {
		names = append(names, l.name)
	}
	sort.Strings(names)
	return names
}

// InterpreterCommand returns the default command template for a supported language.
func InterpreterCommand(lang string) (string, bool) {
	l, ok := lookupLanguage(lang)
	if !ok {
		return "", false
	}
	return l.command, true
}

// ExecutableCode is a code block in a runnable language.
type ExecutableCode struct {
	Language string // canonical language name
	Code     string
	lang     language
}

// NewExecutableCode returns nil when tag is not a supported language.
func NewExecutableCode(tag, code string) *ExecutableCode {
	l, ok := lookupLanguage(tag)
	if !ok {
		return nil
	}
	return &ExecutableCode{
		Language: l.name,
		Code:     code,
		lang:     l,
	}
}

// WithCommand returns a copy that runs with the command template cmd.
func (c *ExecutableCode) WithCommand(cmd string) *ExecutableCode {
	cc := *c
	cc.lang.command = cmd
	return &cc
}

// Command returns the command template.
func (c *ExecutableCode) Command() string {
	return c.lang.command
}

// shellQuote quotes s for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
