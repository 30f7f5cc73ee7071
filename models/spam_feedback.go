package models

import (
	"gorm.io/gorm"
)

type SpamStatus string

const (
	SpamPending   SpamStatus = "Pending"
	SpamResolved  SpamStatus = "Resolved"
	SpamDismissed SpamStatus = "Dismissed"
)

// SpamFeedback is a moderation report against a feedback item. The unique
// index on FeedbackID enforces at most one report per feedback at the store
// level; a duplicate insert surfaces as gorm.ErrDuplicatedKey.
type SpamFeedback struct {
	gorm.Model
	FeedbackID   uint       `json:"feedback_id" gorm:"uniqueIndex;not null"`
	Feedback     Feedback   `json:"feedback,omitempty" gorm:"foreignKey:FeedbackID"`
	ReportedByID uint       `json:"reported_by_id"`
	ReportedBy   User       `json:"reported_by,omitempty" gorm:"foreignKey:ReportedByID"`
	Reason       string     `json:"reason"`
	Status       SpamStatus `json:"status"`
	Resolution   string     `json:"resolution"`
}

func (s *SpamFeedback) BeforeCreate(tx *gorm.DB) error {
	if s.Status == "" {
		s.Status = SpamPending
	}
	return nil
}
