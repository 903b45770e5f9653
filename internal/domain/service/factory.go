package service

import (
	"time"

	"github.com/google/uuid"
)

// NewFromCreateRequest builds a Service from the incoming DTO.
func NewFromCreateRequest(req CreateServiceRequest, creatorID string) Service {
	now := time.Now().UTC()

	var createdBy *string
	if creatorID != "" {
		createdBy = &creatorID
	}

	reqs := req.Requirements
	if reqs == nil {
		reqs = []string{}
	}

	return Service{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		Category:         req.Category,
		VolunteersNeeded: req.VolunteersNeeded,
		Date:             req.Date,
		Time:             req.Time,
		Organizer:        req.Organizer,
		Requirements:     reqs,
		Image:            req.Image,
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
