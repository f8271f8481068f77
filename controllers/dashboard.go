package controllers

import (
	"net/http"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalInvoices  int64           `json:"totalInvoices"`
	TotalCustomers int64           `json:"totalCustomers"`
	TotalPaid      int64           `json:"totalPaid"`    // cents
	TotalPending   int64           `json:"totalPending"` // cents
	LatestInvoices []LatestInvoice `json:"latestInvoices"`
}

type LatestInvoice struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Amount       int64  `json:"amount"`
	Status       string `json:"status"`
	Date         string `json:"date"`
}

// GetDashboardOverview returns the card summary shown at the top of the
// dashboard plus the five most recent invoices.
func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview

	if err := config.DB.Model(&models.Invoice{}).Count(&overview.TotalInvoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	config.DB.Model(&models.Customer{}).Count(&overview.TotalCustomers)

	config.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.TotalPaid)
	config.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.TotalPending)

	var latest []models.Invoice
	config.DB.Order("date DESC").Limit(5).Find(&latest)

	overview.LatestInvoices = make([]LatestInvoice, 0, len(latest))
	for _, inv := range latest {
		var customer models.Customer
		name := ""
		if err := config.DB.First(&customer, "id = ?", inv.CustomerID).Error; err == nil {
			name = customer.Name
		}
		overview.LatestInvoices = append(overview.LatestInvoices, LatestInvoice{
			ID:           inv.ID.String(),
			CustomerName: name,
			Amount:       inv.Amount,
			Status:       inv.Status,
			Date:         inv.Date,
		})
	}

	c.JSON(http.StatusOK, overview)
}
