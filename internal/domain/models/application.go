package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Application is a snapshot of a job posting taken when someone applies to it.
// It is not kept in sync with the posting afterwards.
type Application struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	JobID          string    `gorm:"index" json:"jobId"`
	Title          string    `json:"title"`
	Photo          string    `json:"photo,omitempty"`
	Description    string    `json:"description"`
	Salary         int64     `json:"salary"`
	Deadline       string    `json:"deadline"`
	JobOption      JobOption `gorm:"index" json:"jobOption"`
	PostDate       string    `json:"postDate"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `gorm:"index" json:"applicantEmail"`
	CV             string    `json:"cv"`
	AppliedAt      time.Time `gorm:"autoCreateTime" json:"appliedAt"`
}

func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
