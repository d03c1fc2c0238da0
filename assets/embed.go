// Package assets embeds the default candidate word list.
package assets

import (
	"bufio"
	"bytes"
	"embed"
	"strings"
)

//go:embed words.txt
var FS embed.FS

// readLines returns the trimmed, lowercased non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	data, err := FS.ReadFile(name)
	if err != nil {
		return nil, err
	}

	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded default word list in file order.
func WordList() ([]string, error) {
	return readLines("words.txt")
}
