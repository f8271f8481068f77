package controllers

import (
	"net/http"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
)

type MonthlyRevenue struct {
	Month   string `json:"month"`   // YYYY-MM
	Revenue int64  `json:"revenue"` // cents, paid invoices only
}

// GetRevenueReport returns paid revenue per month for the last 12 months,
// oldest first. Aggregation happens in Go so the same query works on every
// dialect the store runs on.
func GetRevenueReport(c *gin.Context) {
	since := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")

	var invoices []models.Invoice
	if err := config.DB.
		Where("status = ? AND date >= ?", models.InvoiceStatusPaid, since).
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load revenue report")
		return
	}

	byMonth := map[string]int64{}
	for _, inv := range invoices {
		if len(inv.Date) < 7 {
			continue
		}
		byMonth[inv.Date[:7]] += inv.Amount
	}

	// Emit one bucket per month, including empty ones.
	report := make([]MonthlyRevenue, 0, 12)
	now := time.Now()
	// Anchor on the first of the month so AddDate never skips short months.
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 11; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, -i, 0).Format("2006-01")
		report = append(report, MonthlyRevenue{
			Month:   month,
			Revenue: byMonth[month],
		})
	}

	c.JSON(http.StatusOK, report)
}
