package catalog

import (
	"testing"

	"github.com/shoplens/shoplens/internal/domain"
)

func product(id int, name, brand, category string, price float64) domain.Product {
	return domain.Product{ID: id, Name: name, Brand: brand, Category: category, Price: price}
}

func TestMatchLabelSymmetricSubstring(t *testing.T) {
	cat := []domain.Product{
		product(1, "Apple iPhone 15 Pro", "Apple", "smartphone", 999.99),
		product(2, "OnePlus 12", "Oneplus", "smartphone", 849.99),
		product(3, "Sony WH-1000XM5", "Sony", "headphones", 399.99),
	}

	// Case-mismatched label, price-ascending order.
	got := Match(cat, "Smartphone", "")
	if len(got) != 2 {
		t.Fatalf("matched %d products, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", got[0].ID, got[1].ID)
	}
	if min, ok := GlobalBestPrice(got); !ok || min != 849.99 {
		t.Errorf("best price = %v %v, want 849.99", min, ok)
	}
}

func TestMatchLabelBothDirections(t *testing.T) {
	cat := []domain.Product{
		product(1, "Canon EOS R50", "Canon", "camera", 679.00),
	}
	tests := []struct {
		label string
		want  int
	}{
		{"camera", 1},          // exact
		{"Camera", 1},          // case fold
		{"action camera", 1},   // label contains category
		{"cam", 1},             // category contains label
		{"television", 0},      // no relation
	}
	for _, tc := range tests {
		if got := len(Match(cat, tc.label, "")); got != tc.want {
			t.Errorf("Match(label=%q) = %d matches, want %d", tc.label, got, tc.want)
		}
	}
}

func TestMatchKeywordsTakePrecedenceOverLabel(t *testing.T) {
	cat := []domain.Product{
		product(1, "Nike Air Max 270", "Nike", "shoes", 150.00),
		product(2, "Apple iPhone 15 Pro", "Apple", "smartphone", 999.99),
	}

	// The label would match the iPhone, but keywords win exclusively.
	got := Match(cat, "smartphone", "nike shoes")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("keyword match = %v, want only the Nike product", got)
	}
}

func TestMatchKeywordTokensAreORed(t *testing.T) {
	cat := []domain.Product{
		product(1, "Nike Air Max 270", "Nike", "shoes", 150.00),
		product(2, "Adidas Ultraboost 22", "Adidas", "shoes", 180.00),
		product(3, "JBL Flip 6", "Jbl", "speaker", 129.99),
	}
	tests := []struct {
		keywords string
		want     []int
	}{
		{"nike shoes", []int{1, 2}}, // "shoes" hits Adidas too
		{"nike", []int{1}},
		{"flip", []int{3}},
		{"nothinghere", nil},
		{"   ", []int{1, 2, 3}}, // blank keywords fall back to the label path
	}
	for _, tc := range tests {
		got := Match(cat, "", tc.keywords)
		ids := make([]int, len(got))
		for i, m := range got {
			ids[i] = m.ID
		}
		if len(ids) != len(tc.want) {
			t.Errorf("Match(keywords=%q) ids = %v, want %v", tc.keywords, ids, tc.want)
			continue
		}
		seen := make(map[int]bool, len(ids))
		for _, id := range ids {
			seen[id] = true
		}
		for _, id := range tc.want {
			if !seen[id] {
				t.Errorf("Match(keywords=%q) missing id %d", tc.keywords, id)
			}
		}
	}
}

func TestMatchStableSortOnEqualPrices(t *testing.T) {
	cat := []domain.Product{
		product(1, "Speaker One", "Generic", "speaker", 99.99),
		product(2, "Speaker Two", "Generic", "speaker", 99.99),
		product(3, "Speaker Cheap", "Generic", "speaker", 49.99),
	}
	got := Match(cat, "speaker", "")
	if len(got) != 3 {
		t.Fatalf("matched %d, want 3", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 1 || got[2].ID != 2 {
		t.Errorf("order = [%d %d %d], want [3 1 2]", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestMatchFlagsAllMinimumPriceRecords(t *testing.T) {
	cat := []domain.Product{
		product(1, "Mouse A", "Logitech", "mouse", 25.00),
		product(2, "Mouse B", "Generic", "mouse", 25.00),
		product(3, "Mouse C", "Generic", "mouse", 40.00),
	}
	got := Match(cat, "mouse", "")
	if !got[0].BestPrice || !got[1].BestPrice {
		t.Errorf("both minimum-price records should be flagged: %v %v", got[0].BestPrice, got[1].BestPrice)
	}
	if got[2].BestPrice {
		t.Errorf("non-minimum record flagged as best price")
	}
}

func TestMatchEmptyResultIsValid(t *testing.T) {
	got := Match(nil, "anything", "")
	if len(got) != 0 {
		t.Fatalf("matched %d on empty catalog", len(got))
	}
	if _, ok := GlobalBestPrice(got); ok {
		t.Error("GlobalBestPrice reported a value for an empty match set")
	}
}
