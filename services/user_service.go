package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/utils"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserProfileInput struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Birthday      string  `json:"birthday"` // YYYY-MM-DD
	Sex           string  `json:"sex"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	FitnessGoal   string  `json:"fitness_goal"`
	Onboarded     bool    `json:"onboarded"`
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (map[string]any, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND disabled = ?", userID, false).
		First(&user).Error
	if err != nil {
		return nil, errors.New("user not found or disabled")
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}
	bmi, _ := utils.CalculateBMI(user.HeightCm, user.WeightKg)

	return map[string]any{
		"id":             user.ID,
		"email":          user.Email,
		"first_name":     user.FirstName,
		"last_name":      user.LastName,
		"birthday":       user.Birthday.Format("2006-01-02"),
		"age":            age,
		"sex":            user.Sex,
		"height_cm":      user.HeightCm,
		"weight_kg":      user.WeightKg,
		"bmi":            utils.Round2(bmi),
		"bmi_category":   utils.BMICategory(bmi),
		"activity_level": user.ActivityLevel,
		"fitness_goal":   user.FitnessGoal,
		"onboarded":      user.Onboarded,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UserProfileInput) error {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND disabled = ?", userID, false).
		First(&user).Error
	if err != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
		}
	}
	if input.Sex != "" {
		user.Sex = input.Sex
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
	}
	if input.ActivityLevel != "" {
		user.ActivityLevel = input.ActivityLevel
	}
	if input.FitnessGoal != "" {
		user.FitnessGoal = input.FitnessGoal
	}
	user.Onboarded = input.Onboarded

	return s.db.WithContext(ctx).Save(&user).Error
}
