package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

// MD5String takes a string and returns its MD5 hash.
func MD5String(f string) string {
	h := md5.New()
	h.Write([]byte(f))
	return hex.EncodeToString(h.Sum(nil))
}

// FirstUpper returns a string with the first character as upper case.
func FirstUpper(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// TitleFromFilename derives a human readable title from a file base name,
// e.g. "shell-basics" becomes "Shell basics". Used when front matter has
// no title.
func TitleFromFilename(baseName string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(baseName)
	return FirstUpper(strings.TrimSpace(s))
}
