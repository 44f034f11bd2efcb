package repository

import (
	"context"

	"github.com/pyama86/YAIB/domain/entity"
)

type IncidentRepository interface {
	FindIncidentByChannel(context.Context, string) (*entity.Incident, error)
	SaveIncident(context.Context, *entity.Incident) error
	CloseIncident(context.Context, string) error
}

type ServiceRepository interface {
	Services(context.Context) []entity.Service
	AnnouncementChannels(context.Context) []string
}

type PriorityRepository interface {
	Priorities(context.Context) []entity.Priority
}

type Repository interface {
	IncidentRepository
	ServiceRepository
	PriorityRepository
}

type RepositoryFacade struct {
	IncidentRepository
	ServiceRepository
	PriorityRepository
}

func NewRepository(incidentRepository IncidentRepository, serviceRepository ServiceRepository, priorityRepository PriorityRepository) Repository {
	return RepositoryFacade{
		IncidentRepository: incidentRepository,
		ServiceRepository:  serviceRepository,
		PriorityRepository: priorityRepository,
	}
}
