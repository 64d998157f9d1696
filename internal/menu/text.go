package menu

import (
	"regexp"
	"strings"
)

var (
	pageNoise = []*regexp.Regexp{
		// "Page 1", "Page 1 of 3"
		regexp.MustCompile(`(?i)^\s*page\s*\d+(\s*of\s*\d+)?\s*$`),
		// "1/5"
		regexp.MustCompile(`^\s*\d+\s*/\s*\d+\s*$`),
		// standalone page numbers
		regexp.MustCompile(`^\s*\d+\s*$`),
		// repeated headers
		regexp.MustCompile(`(?i)^\s*menu\s*$`),
	}

	spaceRun = regexp.MustCompile(`[ \t\x{00a0}]+`)
	blankRun = regexp.MustCompile(`\n{3,}`)

	artifacts = []string{"�", "©", "™", "®"}
)

// CleanText turns extracted PDF text into one trimmed item candidate per
// line.
func CleanText(raw string) string {
	if raw == "" {
		return raw
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	for _, a := range artifacts {
		text = strings.ReplaceAll(text, a, "")
	}

	lines := strings.Split(text, "\n")
	clean := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if isNoise(line) {
			continue
		}
		clean = append(clean, line)
	}

	return strings.TrimSpace(blankRun.ReplaceAllString(strings.Join(clean, "\n"), "\n\n"))
}

func isNoise(line string) bool {
	for _, p := range pageNoise {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
