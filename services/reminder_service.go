// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const defaultReminderAfterDays = 7

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendPaymentReminders)

	c.Start()
	log.Println("Payment reminder scheduler started")
}

// SendPaymentReminders texts every customer with a pending invoice older
// than the configured grace period. Invoices already reminded inside the
// current period are skipped.
func (s *ReminderService) SendPaymentReminders() {
	log.Println("Starting payment reminder processing...")

	invoices, err := s.OverduePendingInvoices()
	if err != nil {
		log.Printf("Failed to fetch overdue invoices: %v", err)
		return
	}

	for _, invoice := range invoices {
		s.remind(invoice)
	}

	log.Println("Payment reminder processing completed")
}

// OverduePendingInvoices returns pending invoices past the grace period
// that have no reminder logged inside the current period.
func (s *ReminderService) OverduePendingInvoices() ([]models.Invoice, error) {
	days := reminderAfterDays()
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	var invoices []models.Invoice
	err := s.db.
		Where("status = ? AND date <= ?", models.InvoiceStatusPending, cutoff).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	remindedSince := time.Now().AddDate(0, 0, -days)
	due := invoices[:0]
	for _, invoice := range invoices {
		var logged int64
		s.db.Model(&models.ReminderLog{}).
			Where("invoice_id = ? AND status = ? AND sent_at > ?", invoice.ID, "sent", remindedSince).
			Count(&logged)
		if logged == 0 {
			due = append(due, invoice)
		}
	}
	return due, nil
}

func (s *ReminderService) remind(invoice models.Invoice) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", invoice.CustomerID).Error; err != nil {
		log.Printf("Invoice %s: customer lookup failed: %v", invoice.ID, err)
		return
	}
	if customer.Phone == "" {
		return
	}

	message := ReminderMessage(customer.Name, invoice)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}

	reminderLog := models.ReminderLog{
		InvoiceID:    invoice.ID,
		CustomerID:   customer.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for invoice %s: %v", invoice.ID, err)
	}
}

// ReminderMessage renders the SMS body for a pending invoice.
func ReminderMessage(customerName string, invoice models.Invoice) string {
	overdue := ""
	if issued, err := time.Parse("2006-01-02", invoice.Date); err == nil {
		if days := utils.DaysBetween(issued, time.Now()); days > 0 {
			overdue = fmt.Sprintf(" from %d days ago", days)
		}
	}
	return fmt.Sprintf("Hi %s, your invoice of $%.2f%s is still awaiting payment.",
		customerName, float64(invoice.Amount)/100, overdue)
}

func reminderAfterDays() int {
	if env := os.Getenv("REMINDER_AFTER_DAYS"); env != "" {
		if d, err := strconv.Atoi(env); err == nil && d > 0 {
			return d
		}
	}
	return defaultReminderAfterDays
}
