package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-board/internal/domain/events"
	"github.com/maxaizer/job-board/internal/domain/models"
)

type jobRepository interface {
	Add(ctx context.Context, job *models.JobPosting) error
	GetByID(ctx context.Context, id string) (*models.JobPosting, error)
	Find(ctx context.Context, filter models.JobFilter) ([]models.JobPosting, error)
	Update(ctx context.Context, id string, fields map[string]any) (bool, bool, error)
	Remove(ctx context.Context, id string) error
}

type JobService struct {
	jobs jobRepository
	bus  EventBus.Bus
}

func NewJobService(jobs jobRepository, bus EventBus.Bus) *JobService {
	return &JobService{jobs: jobs, bus: bus}
}

func (s *JobService) Create(ctx context.Context, job *models.JobPosting) error {
	job.ID = ""
	job.ApplicantsNumber = 0
	return s.jobs.Add(ctx, job)
}

func (s *JobService) Get(ctx context.Context, id string) (*models.JobPosting, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *JobService) Find(ctx context.Context, filter models.JobFilter) ([]models.JobPosting, error) {
	return s.jobs.Find(ctx, filter)
}

func (s *JobService) Update(ctx context.Context, id string, fields map[string]any) (matched bool, modified bool, err error) {
	matched, modified, err = s.jobs.Update(ctx, id, fields)
	if err == nil && modified {
		s.bus.Publish(events.JobChangedTopic, events.JobChanged{JobID: id})
	}
	return matched, modified, err
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.jobs.Remove(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(events.JobChangedTopic, events.JobChanged{JobID: id})
	return nil
}
