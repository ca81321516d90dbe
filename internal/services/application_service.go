package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-board/internal/domain/events"
	"github.com/maxaizer/job-board/internal/domain/models"
	"github.com/maxaizer/job-board/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type applicationRepository interface {
	Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
	Submit(ctx context.Context, application *models.Application) error
}

type ApplicationService struct {
	applications applicationRepository
	bus          EventBus.Bus
}

func NewApplicationService(applications applicationRepository, bus EventBus.Bus) (*ApplicationService, error) {
	s := &ApplicationService{applications: applications, bus: bus}
	if err := bus.Subscribe(events.ApplicationSubmittedTopic, s.onApplicationSubmitted); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ApplicationService) Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	return s.applications.Find(ctx, filter)
}

func (s *ApplicationService) Submit(ctx context.Context, application *models.Application) error {
	application.ID = ""
	if err := s.applications.Submit(ctx, application); err != nil {
		return err
	}

	s.bus.Publish(events.JobChangedTopic, events.JobChanged{JobID: application.JobID})
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{Application: *application})
	return nil
}

func (s *ApplicationService) onApplicationSubmitted(event events.ApplicationSubmitted) {
	metrics.ApplicationsCounter.Inc()
	log.Infof("application %s submitted for job %s by %s",
		event.Application.ID, event.Application.JobID, event.Application.ApplicantEmail)
}
