package models

// JobFilter narrows a job postings query. At most one field is expected to be set;
// the zero value matches every posting.
type JobFilter struct {
	TitleContains string
	OwnerEmail    string
	JobOption     JobOption
}

type ApplicationFilter struct {
	JobOption      JobOption
	ApplicantEmail string
}
