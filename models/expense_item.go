package models

import (
	"time"

	"gorm.io/gorm"
)

// ExpenseItem is a purchased item from receipt ingestion. The receipt
// parser lives outside this service; rows arrive already extracted.
type ExpenseItem struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`

	Name    string `gorm:"not null"`
	ItemKey string `gorm:"index;size:128"` // links to nutrition profiles/logs

	Quantity   float64
	UnitPrice  float64
	TotalPrice float64
	Currency   string `gorm:"size:8"`

	PurchasedAt time.Time
	ExpiryDate  *time.Time `gorm:"index"`

	ReceiptRef string `gorm:"index;size:64"` // stable id from the ingestion side
}
