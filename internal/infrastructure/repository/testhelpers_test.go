package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	"github.com/orris-inc/helpdesk/internal/domain/support"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

func seedCustomer(t *testing.T, repo *CustomerRepository, name, email string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(customer.Profile{Name: name, Email: email, Company: name + " Inc"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func seedSupport(t *testing.T, repo *SupportRepository, name, email string) *support.Support {
	t.Helper()
	s, err := support.NewSupport(support.Profile{Name: name, Email: email, Specialty: "printers"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func seedTicket(t *testing.T, repo *TicketRepository, subject vo.Subject, customerID uint, supportID *uint, eq ticket.Equipment) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(subject, "Printer does not turn on", eq, customerID, nil)
	require.NoError(t, err)
	if supportID != nil {
		_, err = tk.AssignSupport(supportID)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func ptr(v uint) *uint { return &v }
