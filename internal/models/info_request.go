package models

import (
	"time"

	"gorm.io/gorm"
)

// DescribedState is the user-described status of an info request
type DescribedState string

const (
	WaitingResponse      DescribedState = "waiting_response"
	WaitingClarification DescribedState = "waiting_clarification"
	Successful           DescribedState = "successful"
	PartiallySuccessful  DescribedState = "partially_successful"
	NotHeld              DescribedState = "not_held"
	Rejected             DescribedState = "rejected"
)

// InfoRequest is a request for information made by a user to a public body
type InfoRequest struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	Title                  string         `gorm:"size:255;not null" json:"title"`
	UserID                 uint           `gorm:"not null;index" json:"user_id"`
	DescribedState         DescribedState `gorm:"size:30;not null;index:idx_info_request_overdue" json:"described_state"`
	DateResponseRequiredBy time.Time      `gorm:"not null;index:idx_info_request_overdue" json:"date_response_required_by"`
	CreatedAt              time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time      `gorm:"not null" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsOverdue checks if the request is still waiting for a response after its due date
func (r *InfoRequest) IsOverdue(now time.Time) bool {
	return r.DescribedState == WaitingResponse && now.After(r.DateResponseRequiredBy)
}

// BeforeCreate hook is called before creating a new info request
func (r *InfoRequest) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	if r.DescribedState == "" {
		r.DescribedState = WaitingResponse
	}
	return nil
}

// BeforeSave hook is called before saving the info request
func (r *InfoRequest) BeforeSave(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the InfoRequest model
func (InfoRequest) TableName() string {
	return "info_requests"
}
