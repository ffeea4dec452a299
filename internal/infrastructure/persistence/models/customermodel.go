package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

type CustomerModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:255"`
	Company   string `gorm:"size:255"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Phone     string `gorm:"size:50"`
	Address   string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomerModel) TableName() string {
	return constants.TableCustomers
}
