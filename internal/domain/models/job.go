package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type JobOption string

const (
	OnSite   JobOption = "On-Site"
	Remote   JobOption = "Remote"
	Hybrid   JobOption = "Hybrid"
	PartTime JobOption = "Part-Time"
)

// DateLayout is the format of deadline and post date fields.
const DateLayout = "2006-01-02"

type JobPosting struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"index" json:"title"`
	Description      string    `json:"description"`
	Photo            string    `json:"photo,omitempty"`
	Salary           int64     `json:"salary"`
	JobOption        JobOption `gorm:"index" json:"jobOption"`
	Deadline         string    `json:"deadline"`
	PostDate         string    `json:"postDate"`
	Name             string    `json:"name,omitempty"`
	Email            string    `gorm:"index" json:"email"`
	ApplicantsNumber int64     `gorm:"not null;default:0" json:"applicantsNumber"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

func (j *JobPosting) BeforeCreate(_ *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.PostDate == "" {
		j.PostDate = time.Now().Format(DateLayout)
	}
	return nil
}

// Columns returns the client-editable fields keyed by their column names.
func (j JobPosting) Columns() map[string]any {
	return map[string]any{
		"title":       j.Title,
		"description": j.Description,
		"photo":       j.Photo,
		"salary":      j.Salary,
		"job_option":  j.JobOption,
		"deadline":    j.Deadline,
		"post_date":   j.PostDate,
		"name":        j.Name,
		"email":       j.Email,
	}
}
