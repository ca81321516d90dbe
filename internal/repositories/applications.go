package repositories

import (
	"context"
	"github.com/maxaizer/job-board/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (repo *Applications) Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	query := repo.db.WithContext(ctx).Model(&models.Application{})

	switch {
	case filter.JobOption != "":
		query = query.Where("job_option = ?", filter.JobOption)
	case filter.ApplicantEmail != "":
		query = query.Where("applicant_email = ?", filter.ApplicantEmail)
	}

	applications := make([]models.Application, 0)
	if err := query.Order("applied_at").Find(&applications).Error; err != nil {
		return nil, errors.Wrap(err, "find applications")
	}
	return applications, nil
}

// Submit bumps the applicants counter of the referenced job and stores the
// application in one transaction. ErrNotFound means nothing was written.
func (repo *Applications) Submit(ctx context.Context, application *models.Application) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.JobPosting{}).
			Where("id = ?", application.JobID).
			UpdateColumn("applicants_number", gorm.Expr("applicants_number + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Create(application).Error
	})

	if err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Wrapf(err, "submit application for job %s", application.JobID)
	}
	return err
}
