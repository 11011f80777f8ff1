package gdsc

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. The detector may accept
// several characters; tab is returned whenever it is among them, since the
// GDSC releases are tab-separated. With no candidate at all, comma is assumed.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, v := range delimiters {
		if v == "\t" {
			return '\t'
		}
	}

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// ParseDelimiter converts a user-supplied delimiter name into a rune. The empty
// string yields 0, meaning "detect it from the file".
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`, "\t", "tsv":
		return '\t', nil
	case "comma", ",", "csv":
		return ',', nil
	case "semicolon", ";":
		return ';', nil
	case "space", " ":
		return ' ', nil
	}

	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}

	return 0, fmt.Errorf("Delimiter %q is not a single character", s)
}
