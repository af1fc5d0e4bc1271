package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidAlertType is returned when a sent alert carries an alert type outside the known set
var ErrInvalidAlertType = errors.New("invalid alert type")

// AlertType classifies which alert was sent for an info request
type AlertType string

const (
	// AlertTypeOverdue1 tells the user their info request has become overdue
	AlertTypeOverdue1 AlertType = "overdue_1"
)

// AlertTypes lists every alert type a sent alert may carry.
// Keep in step with the chk_sent_alert_type constraint on UserInfoRequestSentAlert.
var AlertTypes = []AlertType{
	AlertTypeOverdue1,
}

// Valid reports whether t is one of the known alert types
func (t AlertType) Valid() bool {
	for _, known := range AlertTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Validate returns ErrInvalidAlertType wrapped with the rejected value
func (t AlertType) Validate() error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAlertType, string(t))
	}
	return nil
}

// UserInfoRequestSentAlert records that an alert has been sent to a user for an info request.
// The notifier checks for one before sending and writes one after a successful send.
type UserInfoRequestSentAlert struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_sent_alert_lookup" json:"user_id"`
	InfoRequestID uint      `gorm:"not null;index:idx_sent_alert_lookup" json:"info_request_id"`
	AlertType     AlertType `gorm:"size:20;not null;check:chk_sent_alert_type,alert_type IN ('overdue_1');index:idx_sent_alert_lookup" json:"alert_type"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	InfoRequest InfoRequest `gorm:"foreignKey:InfoRequestID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeSave rejects unknown alert types on both create and update
func (a *UserInfoRequestSentAlert) BeforeSave(tx *gorm.DB) error {
	return a.AlertType.Validate()
}

// BeforeUpdate validates the alert type being written, which for Update and Updates
// is in the statement rather than on the model
func (a *UserInfoRequestSentAlert) BeforeUpdate(tx *gorm.DB) error {
	alertType, ok := updatedAlertType(tx.Statement.Dest)
	if !ok {
		return nil
	}
	return alertType.Validate()
}

func updatedAlertType(dest interface{}) (AlertType, bool) {
	switch d := dest.(type) {
	case map[string]interface{}:
		for _, key := range []string{"alert_type", "AlertType"} {
			if v, found := d[key]; found {
				switch t := v.(type) {
				case AlertType:
					return t, true
				case string:
					return AlertType(t), true
				}
				// Expressions are left to the check constraint
				return "", false
			}
		}
	case *UserInfoRequestSentAlert:
		// Zero fields are not written by Updates(struct)
		return d.AlertType, d.AlertType != ""
	case UserInfoRequestSentAlert:
		return d.AlertType, d.AlertType != ""
	}
	return "", false
}

// BeforeCreate hook is called before creating a new sent alert
func (a *UserInfoRequestSentAlert) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the UserInfoRequestSentAlert model
func (UserInfoRequestSentAlert) TableName() string {
	return "user_info_request_sent_alerts"
}

// CreateSentAlertRequest represents the data needed to record a sent alert
type CreateSentAlertRequest struct {
	UserID        uint      `json:"user_id" binding:"required"`
	InfoRequestID uint      `json:"info_request_id" binding:"required"`
	AlertType     AlertType `json:"alert_type"`
}
