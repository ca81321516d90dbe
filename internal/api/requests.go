package api

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/maxaizer/job-board/internal/domain/models"
	"github.com/pkg/errors"
	"io"
	"strings"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// ids are accepted in any form uuid.Parse understands and stored in canonical form
	_ = v.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

func canonicalID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}

type createJobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=10000"`
	Photo       string `json:"photo" validate:"omitempty,url"`
	Salary      int64  `json:"salary" validate:"gte=0"`
	JobOption   string `json:"jobOption" validate:"required,oneof=On-Site Remote Hybrid Part-Time"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
	PostDate    string `json:"postDate" validate:"omitempty,datetime=2006-01-02"`
	Name        string `json:"name" validate:"max=200"`
	Email       string `json:"email" validate:"required,email"`
}

func (r createJobRequest) toJobPosting() *models.JobPosting {
	return &models.JobPosting{
		Title:       r.Title,
		Description: r.Description,
		Photo:       r.Photo,
		Salary:      r.Salary,
		JobOption:   models.JobOption(r.JobOption),
		Deadline:    r.Deadline,
		PostDate:    r.PostDate,
		Name:        r.Name,
		Email:       r.Email,
	}
}

// updateJobRequest is a partial update, nil fields are left untouched.
type updateJobRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Photo       *string `json:"photo" validate:"omitempty,url"`
	Salary      *int64  `json:"salary" validate:"omitempty,gte=0"`
	JobOption   *string `json:"jobOption" validate:"omitempty,oneof=On-Site Remote Hybrid Part-Time"`
	Deadline    *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	PostDate    *string `json:"postDate" validate:"omitempty,datetime=2006-01-02"`
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

func (r updateJobRequest) fields() map[string]any {
	fields := make(map[string]any)
	setIf := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}

	setIf("title", r.Title)
	setIf("description", r.Description)
	setIf("photo", r.Photo)
	setIf("deadline", r.Deadline)
	setIf("post_date", r.PostDate)
	setIf("name", r.Name)
	setIf("email", r.Email)
	if r.Salary != nil {
		fields["salary"] = *r.Salary
	}
	if r.JobOption != nil {
		fields["job_option"] = models.JobOption(*r.JobOption)
	}
	return fields
}

type applicationInfo struct {
	JobID          string `json:"jobId" validate:"required,id"`
	Title          string `json:"title"`
	Photo          string `json:"photo"`
	Description    string `json:"description"`
	Salary         int64  `json:"salary" validate:"gte=0"`
	Deadline       string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	JobOption      string `json:"jobOption" validate:"omitempty,oneof=On-Site Remote Hybrid Part-Time"`
	PostDate       string `json:"postDate" validate:"omitempty,datetime=2006-01-02"`
	ApplicantName  string `json:"applicantName" validate:"required"`
	ApplicantEmail string `json:"applicantEmail" validate:"required,email"`
	CV             string `json:"cv" validate:"required"`
}

type applyRequest struct {
	AppliedJobsInfo *applicationInfo `json:"appliedJobsInfo" validate:"required"`
}

func (r applyRequest) toApplication() *models.Application {
	info := r.AppliedJobsInfo
	return &models.Application{
		JobID:          canonicalID(info.JobID),
		Title:          info.Title,
		Photo:          info.Photo,
		Description:    info.Description,
		Salary:         info.Salary,
		Deadline:       info.Deadline,
		JobOption:      models.JobOption(info.JobOption),
		PostDate:       info.PostDate,
		ApplicantName:  info.ApplicantName,
		ApplicantEmail: info.ApplicantEmail,
		CV:             info.CV,
	}
}

type registerUserRequest struct {
	Name  string `validate:"required,max=200"`
	Email string `validate:"required,email"`
}

var errInvalidJSON = errors.New("invalid JSON body")

func decodeJSON(body io.Reader, dst any) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return nil
}

// validationMessage turns validator errors into one readable line.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if fieldErr.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s: failed %s=%s", fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Param()))
		} else {
			messages = append(messages, fmt.Sprintf("%s: failed %s", fieldErr.Namespace(), fieldErr.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}
