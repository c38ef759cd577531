package domain

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestExpandQuantityMatrix(t *testing.T) {
	quantities := map[string]map[string]int{
		"Black": {"M": 10, "L": 0, "XL": 5},
		"White": {"M": 0, "L": 0},
	}
	placements := []Placement{PlacementFrontA4, PlacementBackA4}

	items := ExpandQuantityMatrix(quantities, placements, 120)

	// Two nonzero cells crossed with two placements.
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Color == "White" {
			t.Errorf("zero cells must not expand, got %+v", item)
		}
		if want := float64(item.Quantity) * 120; item.Price != want {
			t.Errorf("expected line price %f for quantity %d, got %f", want, item.Quantity, item.Price)
		}
		if !item.Placement.Valid() {
			t.Errorf("expanded item carries invalid placement %q", item.Placement)
		}
	}
}

func TestExpandQuantityMatrixEmptyInputs(t *testing.T) {
	if items := ExpandQuantityMatrix(nil, Placements, 120); len(items) != 0 {
		t.Errorf("nil matrix should expand to nothing, got %d items", len(items))
	}
	all := map[string]map[string]int{"Black": {"M": 0, "L": 0}}
	if items := ExpandQuantityMatrix(all, Placements, 120); len(items) != 0 {
		t.Errorf("all-zero matrix should expand to nothing, got %d items", len(items))
	}
	some := map[string]map[string]int{"Black": {"M": 3}}
	if items := ExpandQuantityMatrix(some, nil, 120); len(items) != 0 {
		t.Errorf("no placements should expand to nothing, got %d items", len(items))
	}
}

func TestProperty_MatrixExpansionPreservesQuantityAndValue(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("expansion covers every nonzero cell once per placement", prop.ForAll(
		func(cells []int, placementCount int, unitPrice float64) bool {
			quantities := map[string]map[string]int{"Black": {}}
			sizes := []string{"S", "M", "L", "XL", "XXL"}
			var nonzero int
			var cellSum int
			for i, qty := range cells {
				quantities["Black"][sizes[i]] = qty
				if qty > 0 {
					nonzero++
					cellSum += qty
				}
			}
			placements := Placements[:placementCount]

			items := ExpandQuantityMatrix(quantities, placements, unitPrice)

			if len(items) != nonzero*placementCount {
				t.Logf("FAIL: expected %d items, got %d", nonzero*placementCount, len(items))
				return false
			}

			var order BulkOrder
			order.Items = items
			order.RecomputeTotal()
			want := float64(cellSum*placementCount) * unitPrice
			if math.Abs(order.TotalPrice-want) > 1e-6 {
				t.Logf("FAIL: total %f, want %f", order.TotalPrice, want)
				return false
			}
			return true
		},
		gen.SliceOfN(5, gen.IntRange(0, 50)),
		gen.IntRange(1, len(Placements)),
		gen.Float64Range(1, 500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
