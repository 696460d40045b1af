package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

// ExpenseService stores receipt-ingested purchase items. Parsing happens
// outside this service; rows arrive already extracted, keyed by the
// ingestion side's receipt reference for idempotent re-delivery.
type ExpenseService struct {
	db *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

type ExpenseItemRequest struct {
	Name        string     `json:"name"`
	ItemKey     string     `json:"item_key"`
	Quantity    float64    `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	TotalPrice  float64    `json:"total_price"`
	Currency    string     `json:"currency"`
	PurchasedAt time.Time  `json:"purchased_at"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	ReceiptRef  string     `json:"receipt_ref"`
}

// Ingest upserts each item by (user, receipt_ref, name) so a re-delivered
// receipt does not duplicate rows.
func (s *ExpenseService) Ingest(ctx context.Context, userID uint, items []ExpenseItemRequest) ([]models.ExpenseItem, error) {
	out := make([]models.ExpenseItem, 0, len(items))
	for _, req := range items {
		if req.Name == "" {
			return nil, errors.New("item name is required")
		}
		item := models.ExpenseItem{
			UserID:      userID,
			Name:        req.Name,
			ItemKey:     req.ItemKey,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			TotalPrice:  req.TotalPrice,
			Currency:    req.Currency,
			PurchasedAt: req.PurchasedAt,
			ExpiryDate:  req.ExpiryDate,
			ReceiptRef:  req.ReceiptRef,
		}
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND receipt_ref = ? AND name = ?", userID, req.ReceiptRef, req.Name).
			Assign(map[string]any{
				"item_key":     item.ItemKey,
				"quantity":     item.Quantity,
				"unit_price":   item.UnitPrice,
				"total_price":  item.TotalPrice,
				"currency":     item.Currency,
				"purchased_at": item.PurchasedAt,
				"expiry_date":  item.ExpiryDate,
			}).
			FirstOrCreate(&item).Error
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// ListExpiring returns items whose expiry date falls within the next
// `days` days or has already passed.
func (s *ExpenseService) ListExpiring(ctx context.Context, userID uint, days int) ([]models.ExpenseItem, error) {
	horizon := time.Now().AddDate(0, 0, days)
	var items []models.ExpenseItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", userID, horizon).
		Order("expiry_date ASC").
		Find(&items).Error
	return items, err
}

func (s *ExpenseService) List(ctx context.Context, userID uint, from, to time.Time) ([]models.ExpenseItem, error) {
	var items []models.ExpenseItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND purchased_at BETWEEN ? AND ?", userID, from, to).
		Order("purchased_at DESC").
		Find(&items).Error
	return items, err
}
