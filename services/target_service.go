package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/utils"
)

// TargetService maintains each user's daily nutrient targets: either set
// directly or derived from body metrics and goals.
type TargetService struct {
	db *gorm.DB
}

func NewTargetService(db *gorm.DB) *TargetService {
	return &TargetService{db: db}
}

func (s *TargetService) Get(ctx context.Context, userID uint) (*models.DailyTargets, error) {
	var t models.DailyTargets
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *TargetService) Upsert(ctx context.Context, userID uint, targets models.DailyTargets) (*models.DailyTargets, error) {
	targets.UserID = userID
	var existing models.DailyTargets
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.WithContext(ctx).Create(&targets).Error; err != nil {
			return nil, err
		}
		return &targets, nil
	}
	if err != nil {
		return nil, err
	}

	existing.Calories = targets.Calories
	existing.Protein = targets.Protein
	existing.Carbs = targets.Carbs
	existing.Fat = targets.Fat
	existing.Fiber = targets.Fiber
	existing.Sugar = targets.Sugar
	existing.Sodium = targets.Sodium
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Derive computes targets from the user's body metrics and stores them.
func (s *TargetService) Derive(ctx context.Context, userID uint) (*models.DailyTargets, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	derived, err := utils.DeriveDailyTargets(&user)
	if err != nil {
		return nil, err
	}
	return s.Upsert(ctx, userID, *derived)
}
