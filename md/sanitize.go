package md

import "regexp"

var (
	// <!-- ... --> spanning lines, non-greedy.
	commentReg = regexp.MustCompile(`(?s)<!--.*?--\s*>`)
	// A `---` delimited block of `key: value` lines at the very start of the document.
	headerReg = regexp.MustCompile(`\A---(?:\r\n?|\n)((?:\w+: [^\r\n]+(?:\r\n?|\n))+)---(?:\r\n?|\n|\z)`)
)

// Sanitize removes comments and then the leading metadata header.
// The order matters: a header preceded only by a comment is still stripped.
func Sanitize(text string) string {
	return StripHeader(StripComments(text))
}

// StripComments removes every HTML comment region.
func StripComments(text string) string {
	return commentReg.ReplaceAllString(text, "")
}

// StripHeader removes the metadata header if the text starts with one.
func StripHeader(text string) string {
	loc := headerReg.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}

// header returns the body of the leading metadata header, if any.
func header(text string) (string, bool) {
	m := headerReg.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
