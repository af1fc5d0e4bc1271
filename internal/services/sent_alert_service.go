package services

import (
	"context"
	"fmt"

	"inforequests/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SentAlertService records which alerts have gone out so the notifier never sends one twice.
//
// Create does not deduplicate: two calls with the same arguments store two rows.
// Callers are expected to check Exists first.
type SentAlertService struct {
	db *gorm.DB
}

func NewSentAlertService(db *gorm.DB) *SentAlertService {
	return &SentAlertService{db: db}
}

// Create stores a record that alertType was sent to the user for the info request
func (s *SentAlertService) Create(ctx context.Context, userID, infoRequestID uint, alertType models.AlertType) (*models.UserInfoRequestSentAlert, error) {
	if err := alertType.Validate(); err != nil {
		return nil, err
	}

	alert := &models.UserInfoRequestSentAlert{
		UserID:        userID,
		InfoRequestID: infoRequestID,
		AlertType:     alertType,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to record %s alert for user %d, info request %d: %w",
			alertType, userID, infoRequestID, err)
	}

	return alert, nil
}

// Exists checks whether alertType has already been sent to the user for the info request
func (s *SentAlertService) Exists(ctx context.Context, userID, infoRequestID uint, alertType models.AlertType) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.UserInfoRequestSentAlert{}).
		Where("user_id = ? AND info_request_id = ? AND alert_type = ?", userID, infoRequestID, alertType).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up %s alert for user %d, info request %d: %w",
			alertType, userID, infoRequestID, err)
	}
	return count > 0, nil
}

// ListForInfoRequest returns every alert sent for an info request, oldest first
func (s *SentAlertService) ListForInfoRequest(ctx context.Context, infoRequestID uint) ([]models.UserInfoRequestSentAlert, error) {
	alerts := []models.UserInfoRequestSentAlert{}
	err := s.db.WithContext(ctx).
		Where("info_request_id = ?", infoRequestID).
		Order("created_at ASC, id ASC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts for info request %d: %w", infoRequestID, err)
	}
	return alerts, nil
}
