package bundle

import "strings"

// SanitizeName replaces every rune outside [A-Za-z0-9-_] with an underscore.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// entryPart makes one component of an archive entry name flat. Ids and file
// names are free-form, and a separator would nest the entry in a directory.
func entryPart(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, s)
}
