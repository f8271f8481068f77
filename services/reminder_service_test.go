package services

import (
	"testing"
	"time"

	"invoicehub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReminderDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Invoice{}, &models.ReminderLog{}))
	return db
}

func dateDaysAgo(days int) string {
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

func TestOverduePendingInvoices_SelectsOnlyOldPending(t *testing.T) {
	db := setupReminderDB(t)
	s := &ReminderService{db: db}

	overdue := models.Invoice{CustomerID: uuid.New(), Amount: 1000, Status: models.InvoiceStatusPending, Date: dateDaysAgo(10)}
	fresh := models.Invoice{CustomerID: uuid.New(), Amount: 1000, Status: models.InvoiceStatusPending, Date: dateDaysAgo(2)}
	paid := models.Invoice{CustomerID: uuid.New(), Amount: 1000, Status: models.InvoiceStatusPaid, Date: dateDaysAgo(30)}
	for _, inv := range []*models.Invoice{&overdue, &fresh, &paid} {
		require.NoError(t, db.Create(inv).Error)
	}

	due, err := s.OverduePendingInvoices()
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, overdue.ID, due[0].ID)
}

func TestOverduePendingInvoices_SkipsRecentlyReminded(t *testing.T) {
	db := setupReminderDB(t)
	s := &ReminderService{db: db}

	invoice := models.Invoice{CustomerID: uuid.New(), Amount: 1000, Status: models.InvoiceStatusPending, Date: dateDaysAgo(10)}
	require.NoError(t, db.Create(&invoice).Error)
	require.NoError(t, db.Create(&models.ReminderLog{
		InvoiceID:  invoice.ID,
		CustomerID: invoice.CustomerID,
		Status:     "sent",
		SentAt:     time.Now().AddDate(0, 0, -1),
	}).Error)

	due, err := s.OverduePendingInvoices()
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestOverduePendingInvoices_FailedSendIsRetried(t *testing.T) {
	db := setupReminderDB(t)
	s := &ReminderService{db: db}

	invoice := models.Invoice{CustomerID: uuid.New(), Amount: 1000, Status: models.InvoiceStatusPending, Date: dateDaysAgo(10)}
	require.NoError(t, db.Create(&invoice).Error)
	require.NoError(t, db.Create(&models.ReminderLog{
		InvoiceID:  invoice.ID,
		CustomerID: invoice.CustomerID,
		Status:     "failed",
		SentAt:     time.Now().AddDate(0, 0, -1),
	}).Error)

	due, err := s.OverduePendingInvoices()
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestReminderMessage(t *testing.T) {
	invoice := models.Invoice{Amount: 1999, Date: dateDaysAgo(10)}
	msg := ReminderMessage("Ada", invoice)

	assert.Contains(t, msg, "Hi Ada")
	assert.Contains(t, msg, "$19.99")
	assert.Contains(t, msg, "10 days ago")
}
