// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from the handlers, applies the contact rules and calls the
// repositories.
package service

import (
	"github.com/deppfellow/contacts-api/internal/lib/job"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/deppfellow/contacts-api/internal/server"
)

type Services struct {
	Contacts *ContactService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var jobs Enqueuer
	if s.Job != nil {
		jobs = s.Job
	}

	return &Services{
		Contacts: NewContactService(repos.Contacts, jobs),
		Job:      s.Job,
	}, nil
}
