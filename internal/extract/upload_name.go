package extract

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxUploadNameLen = 255

var errInvalidFileName = errors.New("invalid file name")

// sanitizeUploadName flattens a client-supplied file name into a single
// path segment. Traversal, control characters and invalid UTF-8 are
// rejected; long names are cut from the front so the extension survives.
func sanitizeUploadName(name string) (string, error) {
	if strings.Contains(name, "..") || !utf8.ValidString(name) {
		return "", errInvalidFileName
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", errInvalidFileName
		}
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.TrimLeft(s, ".")
	if s == "" {
		return "", errInvalidFileName
	}
	if len(s) > maxUploadNameLen {
		s = s[len(s)-maxUploadNameLen:]
		for !utf8.ValidString(s) {
			s = s[1:]
		}
	}
	return s, nil
}
