package helpers

import (
	"math"

	"github.com/spycce/SmartTrip/models"
)

// SumExpenses is the total a client is expected to send as totalCost.
func SumExpenses(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// CountDays returns the inclusive number of calendar days between start and end.
// It returns 0 when either date is missing or end precedes start.
func CountDays(start, end models.Date) int {
	if start.IsZero() || end.IsZero() || end.Before(start.Time) {
		return 0
	}
	return int(math.Round(end.Sub(start.Time).Hours()/24)) + 1
}
