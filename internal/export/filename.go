package export

import (
	"mime"
	"strings"
	"unicode"
)

const fallbackName = "note"

// Filename turns a note title into a download file name: control
// characters, quotes, backslashes and path separators are dropped.
func Filename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsControl(r), r == '"', r == '\\', r == '/', r == ';':
			continue
		}
		b.WriteRune(r)
	}

	name := strings.TrimSpace(b.String())
	if name == "" {
		name = fallbackName
	}
	return name + ".pdf"
}

// asciiFilename replaces every non-printable-ASCII rune with '_'.
func asciiFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '_'
		}
		return r
	}, name)
}

// ContentDisposition builds an attachment header for the title. Non-ASCII
// titles get an ASCII filename plus an RFC 5987 filename* parameter.
func ContentDisposition(title string) string {
	name := Filename(title)
	ascii := asciiFilename(name)

	header := mime.FormatMediaType("attachment", map[string]string{"filename": ascii})
	if ascii != name {
		// For non-ASCII values FormatMediaType emits filename*=utf-8''...
		if extended := mime.FormatMediaType("attachment", map[string]string{"filename": name}); extended != "" {
			header += strings.TrimPrefix(extended, "attachment")
		}
	}
	return header
}
