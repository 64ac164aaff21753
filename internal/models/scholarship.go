package models

import (
	"time"
)

type Scholarship struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	ScholarshipName        string    `json:"scholarshipName" gorm:"not null;size:255;index"`
	UniversityName         string    `json:"universityName" gorm:"not null;size:255;index"`
	UniversityCountry      string    `json:"universityCountry" gorm:"size:100;index"`
	UniversityCity         string    `json:"universityCity" gorm:"size:100"`
	UniversityImage        string    `json:"universityImage" gorm:"size:500"`
	SubjectCategory        string    `json:"subjectCategory" gorm:"size:100"`
	ScholarshipCategory    string    `json:"scholarshipCategory" gorm:"size:100;index"`
	Degree                 string    `json:"degree" gorm:"size:100"`
	ApplicationFees        float64   `json:"applicationFees"`
	ServiceCharge          float64   `json:"serviceCharge"`
	ApplicationDeadline    time.Time `json:"applicationDeadline"`
	ScholarshipPostDate    time.Time `json:"scholarshipPostDate"`
	ScholarshipDescription string    `json:"scholarshipDescription" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Scholarship) TableName() string {
	return "scholarships"
}
