package repositories

import (
	"context"
	"github.com/maxaizer/job-board/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) Add(ctx context.Context, user *models.User) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(user).Error, "insert user")
}

func (repo *Users) GetAll(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "find users")
	}
	return users, nil
}
