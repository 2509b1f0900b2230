package stock

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNextOnPurchase(t *testing.T) {
	cases := []struct {
		name                             string
		stockQty, avgCost, qty, unitCost float64
		wantStock, wantAvg               float64
	}{
		{"first lot into empty stock", 0, 0, 100, 10, 100, 10},
		{"blend dearer lot", 100, 10, 50, 20, 150, 13.333333333333334},
		{"blend cheaper lot", 150, 13.333333333333334, 150, 10, 300, 11.666666666666666},
		{"zero quantity lot keeps average", 100, 10, 0, 99, 100, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stock, avg := NextOnPurchase(tc.stockQty, tc.avgCost, tc.qty, tc.unitCost)
			if !almostEqual(stock, tc.wantStock) {
				t.Fatalf("stock = %v, want %v", stock, tc.wantStock)
			}
			if !almostEqual(avg, tc.wantAvg) {
				t.Fatalf("avg = %v, want %v", avg, tc.wantAvg)
			}
		})
	}
}

func TestNextOnUsage(t *testing.T) {
	if got := NextOnUsage(100, 30); got != 70 {
		t.Fatalf("100-30 = %v, want 70", got)
	}
	// Over-consumption clamps instead of going negative.
	if got := NextOnUsage(100, 200); got != 0 {
		t.Fatalf("overdraw = %v, want 0", got)
	}
	if got := NextOnUsage(0, 5); got != 0 {
		t.Fatalf("empty stock = %v, want 0", got)
	}
}

func TestReportedStock(t *testing.T) {
	if got := ReportedStock(500, 120); got != 380 {
		t.Fatalf("got %v, want 380", got)
	}
	if got := ReportedStock(100, 150); got != 0 {
		t.Fatalf("overdrawn history = %v, want 0", got)
	}
}
