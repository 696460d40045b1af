package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

// ProfileService ingests nutrition profiles produced by the external
// extractors (label scan, barcode lookup, AI inference, manual entry).
// Profiles are append-only: ingestion always creates a new row.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type ProfileRequest struct {
	ItemKey   string `json:"item_key"`
	ItemLabel string `json:"item_label"`
	Source    string `json:"source"`
	RawText   string `json:"raw_text"`

	ConfidenceScore *float64 `json:"confidence_score"`

	Calories *float64 `json:"calories_per_serving"`
	Protein  *float64 `json:"protein_per_serving"`
	Carbs    *float64 `json:"carbs_per_serving"`
	Fat      *float64 `json:"fat_per_serving"`
	Fiber    *float64 `json:"fiber_per_serving"`
	Sugar    *float64 `json:"sugar_per_serving"`
	Sodium   *float64 `json:"sodium_per_serving"`
}

var validSources = map[string]bool{
	models.SourceLabelScan:  true,
	models.SourceBarcodeAPI: true,
	models.SourceAIInferred: true,
	models.SourceManual:     true,
}

func (s *ProfileService) Ingest(ctx context.Context, userID uint, req ProfileRequest) (*models.NutritionProfile, error) {
	if req.ItemKey == "" {
		return nil, errors.New("item_key is required")
	}
	if !validSources[req.Source] {
		return nil, fmt.Errorf("unknown source %q", req.Source)
	}
	for _, v := range []*float64{req.Calories, req.Protein, req.Carbs, req.Fat, req.Fiber, req.Sugar, req.Sodium} {
		if v != nil && *v < 0 {
			return nil, errors.New("nutrient quantities must not be negative")
		}
	}

	p := &models.NutritionProfile{
		UserID:          userID,
		ItemKey:         req.ItemKey,
		ItemLabel:       req.ItemLabel,
		Source:          req.Source,
		ConfidenceScore: req.ConfidenceScore,
		RawText:         req.RawText,
		Calories:        req.Calories,
		Protein:         req.Protein,
		Carbs:           req.Carbs,
		Fat:             req.Fat,
		Fiber:           req.Fiber,
		Sugar:           req.Sugar,
		Sodium:          req.Sodium,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Latest returns the authoritative (most recent) profile for an item, nil
// when none exists.
func (s *ProfileService) Latest(ctx context.Context, userID uint, itemKey string) (*models.NutritionProfile, error) {
	var p models.NutritionProfile
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND item_key = ?", userID, itemKey).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) History(ctx context.Context, userID uint, itemKey string) ([]models.NutritionProfile, error) {
	var ps []models.NutritionProfile
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND item_key = ?", userID, itemKey).
		Order("created_at DESC").
		Find(&ps).Error
	return ps, err
}
