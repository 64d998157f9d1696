package order

import "strings"

// Score rates how well a requested item name fits a menu entry name.
// A whole-string containment in either direction is worth 2, and every
// whitespace-separated token of the request found inside the candidate
// adds 1. Comparison is case-insensitive.
func Score(requested, candidate string) int {
	req := strings.ToLower(requested)
	cand := strings.ToLower(candidate)

	score := 0
	if strings.Contains(cand, req) || strings.Contains(req, cand) {
		score += 2
	}
	for _, tok := range strings.Fields(req) {
		if strings.Contains(cand, tok) {
			score++
		}
	}
	return score
}

// BestMatch returns the highest scoring entry. Ties keep the earlier entry.
// ok is false when nothing scored above zero.
func BestMatch(menu []MenuEntry, requested string) (best MenuEntry, ok bool) {
	bestScore := 0
	for _, m := range menu {
		if s := Score(requested, m.Name); s > bestScore {
			bestScore = s
			best = m
		}
	}
	return best, bestScore > 0
}

// MatchLine resolves one requested item against the menu. A match takes
// the catalog id, name and price; otherwise the caller's name and declared
// price (0 when absent) are kept.
func MatchLine(menu []MenuEntry, item RequestedItem) ResolvedLine {
	line := declaredLine(item)

	if m, ok := BestMatch(menu, item.Name); ok {
		id := m.ID
		line.MenuItemID = &id
		line.ItemName = m.Name
		line.UnitPrice = m.Price
	}
	return line
}

// declaredLine takes the request at face value.
func declaredLine(item RequestedItem) ResolvedLine {
	line := ResolvedLine{
		ItemName: item.Name,
		Quantity: int(item.Quantity),
		Notes:    item.Notes,
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	if item.UnitPrice != nil {
		line.UnitPrice = *item.UnitPrice
	}
	return line
}

// manualLine is declaredLine plus an optional menu reference chosen by staff.
func manualLine(item RequestedItem) ResolvedLine {
	line := declaredLine(item)
	if item.MenuItemID != "" {
		id := item.MenuItemID
		line.MenuItemID = &id
	}
	return line
}
