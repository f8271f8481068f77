// controllers/invoice.go
package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"

	"invoicehub-backend/cache"
	"invoicehub-backend/config"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceListPath is the cached dashboard route invalidated by every
// invoice mutation, and the redirect target after create/update.
const InvoiceListPath = "/dashboard/invoices"

// CreateInvoiceInput defines the expected form fields for creating an invoice
type CreateInvoiceInput struct {
	CustomerID string   `form:"customerId" binding:"required,uuid"`
	Amount     *float64 `form:"amount" binding:"required"`
	Status     string   `form:"status" binding:"required,oneof=pending paid"`
}

// UpdateInvoiceInput defines the expected form fields for updating an invoice
type UpdateInvoiceInput struct {
	CustomerID string   `form:"customerId" binding:"required,uuid"`
	Amount     *float64 `form:"amount" binding:"required"`
	Status     string   `form:"status" binding:"required,oneof=pending paid"`
}

// amountInCents converts an entered decimal amount to minor currency units.
func amountInCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateInvoice inserts a new invoice stamped with today's date
func CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
	if err := c.ShouldBind(&input); err != nil {
		// Malformed input surfaces through the framework's error chain,
		// not as the generic store-failure message.
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	invoice := models.Invoice{
		CustomerID: uuid.MustParse(input.CustomerID),
		Amount:     amountInCents(*input.Amount),
		Status:     input.Status,
		Date:       utils.Today(),
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		log.Printf("create invoice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "An error occurred while creating the invoice",
		})
		return
	}

	cache.InvalidatePath(InvoiceListPath)
	c.Redirect(http.StatusSeeOther, InvoiceListPath)
}

// UpdateInvoice rewrites customer, amount and status for the targeted row.
// The id and date columns are never touched, and a target that matches no
// row still takes the success path.
func UpdateInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	result := config.DB.Model(&models.Invoice{}).
		Where("id = ?", invoiceUUID).
		Updates(map[string]interface{}{
			"customer_id": uuid.MustParse(input.CustomerID),
			"amount":      amountInCents(*input.Amount),
			"status":      input.Status,
		})
	if result.Error != nil {
		log.Printf("update invoice %s: %v", invoiceUUID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "An error occurred while updating the invoice",
		})
		return
	}

	cache.InvalidatePath(InvoiceListPath)
	c.Redirect(http.StatusSeeOther, InvoiceListPath)
}

// DeleteInvoice removes the targeted row. Deleting an id that matches no
// row is still a success.
func DeleteInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	if err := config.DB.Delete(&models.Invoice{}, "id = ?", invoiceUUID).Error; err != nil {
		log.Printf("delete invoice %s: %v", invoiceUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "An error occurred while deleting the invoice",
		})
		return
	}

	cache.InvalidatePath(InvoiceListPath)
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

// GetInvoices retrieves all invoices, newest first
func GetInvoices(c *gin.Context) {
	var invoices []models.Invoice
	if err := config.DB.Order("date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}
