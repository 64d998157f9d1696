package order

import "testing"

var pizzaMenu = []MenuEntry{
	{ID: "1", Name: "Cheese Pizza", Price: 12.0},
	{ID: "2", Name: "Pepperoni Pizza", Price: 14.0},
}

func TestScore(t *testing.T) {
	cases := []struct {
		requested, candidate string
		want                 int
	}{
		// containment +2, tokens pepperoni, pizza +1 each
		{"pepperoni pizza large", "Pepperoni Pizza", 4},
		{"pepperoni pizza large", "Cheese Pizza", 1},
		{"PIZZA", "Cheese Pizza", 3},
		{"cheese pizza", "Cheese Pizza", 4},
		{"mystery taco", "Cheese Pizza", 0},
		{"  Cheese   Pizza ", "cheese pizza", 2},
		{"coke", "Coke Zero", 3},
	}

	for _, tc := range cases {
		if got := Score(tc.requested, tc.candidate); got != tc.want {
			t.Errorf("Score(%q, %q) = %d, want %d", tc.requested, tc.candidate, got, tc.want)
		}
	}
}

func TestScore_SubstringAtLeastTwo(t *testing.T) {
	pairs := [][2]string{
		{"pizza", "Cheese Pizza"},
		{"Cheese Pizza with extra basil", "cheese pizza"},
		{"a", "Garlic Bread"},
	}
	for _, p := range pairs {
		if got := Score(p[0], p[1]); got < 2 {
			t.Errorf("Score(%q, %q) = %d, want >= 2", p[0], p[1], got)
		}
	}
}

func TestScore_EachTokenAddsOne(t *testing.T) {
	base := Score("zzz", "Garlic Bread")
	withToken := Score("zzz garlic", "Garlic Bread")
	if withToken-base != 1 {
		t.Fatalf("expected token to add exactly 1, got %d -> %d", base, withToken)
	}
}

func TestMatchLine_Pepperoni(t *testing.T) {
	line := MatchLine(pizzaMenu, RequestedItem{Name: "pepperoni pizza large", Quantity: 2})

	if line.MenuItemID == nil || *line.MenuItemID != "2" {
		t.Fatalf("expected menu item 2, got %v", line.MenuItemID)
	}
	if line.UnitPrice != 14.0 {
		t.Errorf("expected catalog price 14, got %v", line.UnitPrice)
	}
	if line.ItemName != "Pepperoni Pizza" {
		t.Errorf("expected canonical name, got %q", line.ItemName)
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
}

func TestMatchLine_CatalogPriceOverridesDeclared(t *testing.T) {
	declared := 3.5
	line := MatchLine(pizzaMenu, RequestedItem{Name: "cheese pizza", UnitPrice: &declared})

	if line.UnitPrice != 12.0 {
		t.Fatalf("expected catalog price 12, got %v", line.UnitPrice)
	}
}

func TestMatchLine_NoMatch(t *testing.T) {
	line := MatchLine(pizzaMenu, RequestedItem{Name: "mystery taco"})

	if line.MenuItemID != nil {
		t.Fatalf("expected no menu item, got %v", *line.MenuItemID)
	}
	if line.UnitPrice != 0 {
		t.Errorf("expected price 0, got %v", line.UnitPrice)
	}
	if line.ItemName != "mystery taco" {
		t.Errorf("expected declared name, got %q", line.ItemName)
	}
	if line.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", line.Quantity)
	}
}

func TestMatchLine_NoMatchKeepsDeclaredPrice(t *testing.T) {
	declared := 9.25
	line := MatchLine(pizzaMenu, RequestedItem{
		Name:       "mystery taco",
		UnitPrice:  &declared,
		MenuItemID: "spoofed",
	})

	if line.UnitPrice != 9.25 {
		t.Fatalf("expected declared price, got %v", line.UnitPrice)
	}
	if line.MenuItemID != nil {
		t.Fatal("voice lines must not carry a caller supplied menu id")
	}
}

func TestBestMatch_FirstWinsTies(t *testing.T) {
	menu := []MenuEntry{
		{ID: "a", Name: "Garden Salad", Price: 8},
		{ID: "b", Name: "Caesar Salad", Price: 9},
	}
	m, ok := BestMatch(menu, "salad")
	if !ok || m.ID != "a" {
		t.Fatalf("expected first entry on tie, got %+v %v", m, ok)
	}
}

func TestBestMatch_EmptyMenu(t *testing.T) {
	if _, ok := BestMatch(nil, "anything"); ok {
		t.Fatal("expected no match on empty menu")
	}
}
