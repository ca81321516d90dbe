package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-board/internal/domain/events"
	"github.com/maxaizer/job-board/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

type mockApplications struct {
	mock.Mock
}

func (m *mockApplications) Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *mockApplications) Submit(ctx context.Context, application *models.Application) error {
	return m.Called(ctx, application).Error(0)
}

func Test_ApplicationService_Submit_ShouldPublishJobChanged(t *testing.T) {
	repo := &mockApplications{}
	repo.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Application).ID = "application-1"
		}).
		Return(nil).Once()

	bus := EventBus.New()
	var changed []string
	require.NoError(t, bus.Subscribe(events.JobChangedTopic, func(event events.JobChanged) {
		changed = append(changed, event.JobID)
	}))

	service, err := NewApplicationService(repo, bus)
	require.NoError(t, err)

	application := &models.Application{ID: "client-chosen", JobID: "job-1"}
	require.NoError(t, service.Submit(context.Background(), application))

	assert.Equal(t, "application-1", application.ID)
	assert.Equal(t, []string{"job-1"}, changed)
	repo.AssertExpectations(t)
}

func Test_ApplicationService_Submit_WhenRepositoryFails_ShouldNotPublish(t *testing.T) {
	repo := &mockApplications{}
	repo.On("Submit", mock.Anything, mock.Anything).Return(errors.New("db is gone")).Once()

	bus := EventBus.New()
	published := false
	require.NoError(t, bus.Subscribe(events.JobChangedTopic, func(event events.JobChanged) {
		published = true
	}))

	service, err := NewApplicationService(repo, bus)
	require.NoError(t, err)

	err = service.Submit(context.Background(), &models.Application{JobID: "job-1"})
	assert.Error(t, err)
	assert.False(t, published)
}
