package services

import (
	"github.com/maxaizer/job-board/internal/domain/models"
	"net/url"
	"strconv"
)

type jobPredicate struct {
	param string
	build func(value string) (models.JobFilter, bool)
}

// jobPredicates are evaluated in order, the first parameter that yields a filter wins.
var jobPredicates = []jobPredicate{
	{param: "search", build: func(value string) (models.JobFilter, bool) {
		return models.JobFilter{TitleContains: value}, value != ""
	}},
	{param: "email", build: func(value string) (models.JobFilter, bool) {
		return models.JobFilter{OwnerEmail: value}, value != ""
	}},
	{param: "onSite", build: categoryFlag(models.OnSite)},
	{param: "remote", build: categoryFlag(models.Remote)},
	{param: "hybrid", build: categoryFlag(models.Hybrid)},
	{param: "partTime", build: categoryFlag(models.PartTime)},
}

// categoryFlag treats the parameter as a switch for a fixed job option. Any value
// except an explicit false enables it, so ?remote, ?remote=true and ?remote=Remote
// all select remote jobs.
func categoryFlag(option models.JobOption) func(string) (models.JobFilter, bool) {
	return func(value string) (models.JobFilter, bool) {
		if enabled, err := strconv.ParseBool(value); err == nil && !enabled {
			return models.JobFilter{}, false
		}
		return models.JobFilter{JobOption: option}, true
	}
}

func JobFilterFromQuery(query url.Values) models.JobFilter {
	for _, predicate := range jobPredicates {
		if !query.Has(predicate.param) {
			continue
		}
		if filter, ok := predicate.build(query.Get(predicate.param)); ok {
			return filter
		}
	}
	return models.JobFilter{}
}

func ApplicationFilterFromQuery(query url.Values) models.ApplicationFilter {
	return models.ApplicationFilter{
		JobOption:      models.JobOption(query.Get("filter")),
		ApplicantEmail: query.Get("email"),
	}
}
