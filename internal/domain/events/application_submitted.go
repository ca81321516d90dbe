package events

import "github.com/maxaizer/job-board/internal/domain/models"

var ApplicationSubmittedTopic = "ApplicationSubmittedEvent"

type ApplicationSubmitted struct {
	Application models.Application
}
