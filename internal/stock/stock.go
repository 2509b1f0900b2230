// Package stock holds the inventory costing math. The functions are pure so
// the repository layer can apply them inside a compare-and-swap loop and the
// numbers stay testable without a database.
//
// Costing method: continuously-blended weighted average. Every purchase
// re-blends the whole on-hand quantity with the new lot, so purchase order
// matters in a way it would not under FIFO/LIFO. Usage depletes quantity
// only and leaves the average cost untouched.
package stock

// NextOnPurchase folds a purchase of qty units at unitCost into a material
// currently holding stockQty units at avgCost. The new average is the
// quantity-weighted blend of the old holding and the new lot, or zero when
// the resulting stock is not positive.
func NextOnPurchase(stockQty, avgCost, qty, unitCost float64) (newStock, newAvg float64) {
	newStock = stockQty + qty
	if newStock > 0 {
		newAvg = (stockQty*avgCost + qty*unitCost) / newStock
	}
	return newStock, newAvg
}

// NextOnUsage depletes qty units from stockQty, clamping at zero.
// Over-consumption does not error: recording what left the yard wins over
// strict book accuracy.
func NextOnUsage(stockQty, qty float64) float64 {
	next := stockQty - qty
	if next < 0 {
		return 0
	}
	return next
}

// ReportedStock is the on-demand recomputation used by the stock report:
// the full purchase history minus the full usage history, clamped at zero.
func ReportedStock(totalPurchased, totalUsed float64) float64 {
	if totalPurchased <= totalUsed {
		return 0
	}
	return totalPurchased - totalUsed
}
