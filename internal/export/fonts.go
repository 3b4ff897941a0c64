package export

import "strings"

// Font is a resolved core PDF font as passed to SetFont.
type Font struct {
	Family string
	Style  string
}

const (
	familySerif = "Times"
	familyMono  = "Courier"
	familySans  = "Helvetica"
)

// ResolveFamily maps a stored font family to a document font family.
func ResolveFamily(fontFamily string) string {
	switch {
	case strings.Contains(fontFamily, "Times"):
		return familySerif
	case strings.Contains(fontFamily, "Courier"):
		return familyMono
	default:
		return familySans
	}
}

func ResolveFont(fontFamily string, bold, italic bool) Font {
	family := ResolveFamily(fontFamily)

	style := ""
	if bold {
		style += "B"
	}
	if italic {
		style += "I"
	}

	return Font{Family: family, Style: style}
}
