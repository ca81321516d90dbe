package services

import (
	"context"
	"github.com/maxaizer/job-board/internal/domain/models"
	"io"
)

type userRepository interface {
	Add(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
}

type photoService interface {
	UploadPhoto(ctx context.Context, photo io.Reader) (string, error)
}

type UserService struct {
	users userRepository
	media photoService
}

func NewUserService(users userRepository, media photoService) *UserService {
	return &UserService{users: users, media: media}
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

// Register uploads the profile photo first, the user is only stored once the photo
// is hosted.
func (s *UserService) Register(ctx context.Context, name, email string, photo io.Reader) (*models.User, error) {
	url, err := s.media.UploadPhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, Photo: url}
	if err = s.users.Add(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
