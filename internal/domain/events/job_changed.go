package events

var JobChangedTopic = "JobChangedEvent"

// JobChanged is published after a job posting was updated, removed or applied to.
type JobChanged struct {
	JobID string
}
