package tasks

import (
	"reflect"
	"testing"

	"github.com/moodsplit/moodsplit/internal/models"
)

func TestGroupByCategory(t *testing.T) {
	classifications := []models.Classification{
		{VideoID: "v1", Category: "Chill"},
		{VideoID: "v2", Category: "Hype"},
		{VideoID: "v3", Category: "Chill"},
		{VideoID: "v4", Category: "Hype"},
		{VideoID: "v5", Category: "Chill"},
	}

	groups := GroupByCategory(classifications)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	wantChill := []string{"v1", "v3", "v5"}
	if !reflect.DeepEqual(groups["Chill"], wantChill) {
		t.Errorf("Chill group = %v, want %v", groups["Chill"], wantChill)
	}

	wantHype := []string{"v2", "v4"}
	if !reflect.DeepEqual(groups["Hype"], wantHype) {
		t.Errorf("Hype group = %v, want %v", groups["Hype"], wantHype)
	}
}

func TestGroupByCategory_Idempotent(t *testing.T) {
	classifications := []models.Classification{
		{VideoID: "a", Category: "X"},
		{VideoID: "b", Category: "Y"},
		{VideoID: "c", Category: "X"},
	}

	first := GroupByCategory(classifications)
	second := GroupByCategory(classifications)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("grouping is not idempotent: %v vs %v", first, second)
	}
}

func TestGroupByCategory_Empty(t *testing.T) {
	groups := GroupByCategory(nil)
	if len(groups) != 0 {
		t.Errorf("expected empty mapping, got %v", groups)
	}
}

func TestCategoryOrder(t *testing.T) {
	tests := []struct {
		name     string
		approved []string
		groups   map[string][]string
		want     []string
	}{
		{
			name:     "approved order preserved",
			approved: []string{"C", "A", "B"},
			groups:   map[string][]string{"A": {"v1"}, "B": {"v2"}, "C": {"v3"}},
			want:     []string{"C", "A", "B"},
		},
		{
			name:     "empty categories omitted",
			approved: []string{"A", "B", "C"},
			groups:   map[string][]string{"A": {"v1"}, "C": {"v2"}},
			want:     []string{"A", "C"},
		},
		{
			name:     "stragglers sorted after approved",
			approved: []string{"A"},
			groups:   map[string][]string{"A": {"v1"}, "Z": {"v2"}, "M": {"v3"}},
			want:     []string{"A", "M", "Z"},
		},
		{
			name:     "no groups",
			approved: []string{"A", "B"},
			groups:   map[string][]string{},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryOrder(tt.approved, tt.groups)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CategoryOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}
