package menu

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// name, then at least one leader (spaces, dots, dashes, colon) and/or a
// currency sign, then a price with up to two decimals
var priceLine = regexp.MustCompile(
	`^(.*?\p{L}.*?)(?:[\s.\-–—:…]+[$₹€£]?|[$₹€£])\s*(\d{1,5}(?:[.,]\d{1,2})?)\s*$`,
)

const maxHeadingLen = 40

// ParseItems pulls priced items out of cleaned menu text. A line without a
// price that is written in capitals becomes the category of the items
// below it. Repeated names keep their first price.
func ParseItems(text string) []Item {
	var (
		items    []Item
		category string
		seen     = map[string]bool{}
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := priceLine.FindStringSubmatch(line)
		if m == nil {
			if isHeading(line) {
				category = strings.ToLower(line)
			}
			continue
		}

		name := strings.TrimRight(strings.TrimSpace(m[1]), " .-–—:…")
		if name == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.Replace(m[2], ",", ".", 1), 64)
		if err != nil {
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		items = append(items, Item{
			Name:     name,
			Category: category,
			Price:    price,
		})
	}

	return items
}

func isHeading(line string) bool {
	if len(line) > maxHeadingLen {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
