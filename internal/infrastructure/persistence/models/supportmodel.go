package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// SupportModel stores technicians.
type SupportModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:255"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Phone     string `gorm:"size:50"`
	Specialty string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SupportModel) TableName() string {
	return constants.TableSupports
}
