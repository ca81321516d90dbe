package repositories

import (
	"context"
	"github.com/maxaizer/job-board/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"strings"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *models.JobPosting) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(job).Error, "insert job")
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get job %s", id)
	}
	return &job, nil
}

func (repo *Jobs) Find(ctx context.Context, filter models.JobFilter) ([]models.JobPosting, error) {
	query := repo.db.WithContext(ctx).Model(&models.JobPosting{})

	switch {
	case filter.TitleContains != "":
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(filter.TitleContains))+"%")
	case filter.OwnerEmail != "":
		query = query.Where("email = ?", filter.OwnerEmail)
	case filter.JobOption != "":
		query = query.Where("job_option = ?", filter.JobOption)
	}

	jobs := make([]models.JobPosting, 0)
	if err := query.Order("created_at").Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "find jobs")
	}
	return jobs, nil
}

// Update overwrites only the given columns. It reports whether the job exists and
// whether any stored value actually changed.
func (repo *Jobs) Update(ctx context.Context, id string, fields map[string]any) (matched bool, modified bool, err error) {
	err = repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.JobPosting
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		matched = true

		currentValues := current.Columns()
		changed := lo.PickBy(fields, func(column string, value any) bool {
			return currentValues[column] != value
		})
		if len(changed) == 0 {
			return nil
		}
		modified = true
		return tx.Model(&models.JobPosting{}).Where("id = ?", id).Updates(changed).Error
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		err = errors.Wrapf(err, "update job %s", id)
	}
	return matched, modified, err
}

func (repo *Jobs) Remove(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&models.JobPosting{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete job %s", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
