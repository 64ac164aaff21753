package models

import (
	"time"
)

type Review struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	ScholarshipID uint    `json:"scholarshipId" gorm:"not null;index"`
	UserEmail     string  `json:"userEmail" gorm:"not null;size:255;index"`
	RatingPoint   float64 `json:"ratingPoint"`
	ReviewComment string  `json:"reviewComment" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
