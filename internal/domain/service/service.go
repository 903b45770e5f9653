package service

import (
	"errors"
	"time"
)

// Location is the geocoordinate + human readable address of a listing.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type Service struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Location         Location  `json:"location"`
	Category         string    `json:"category"`
	VolunteersNeeded int       `json:"volunteersNeeded"`
	Date             string    `json:"date"` // YYYY-MM-DD, as scheduled
	Time             string    `json:"time"` // HH:MM local
	Organizer        string    `json:"organizer"`
	Requirements     []string  `json:"requirements"`
	Image            string    `json:"image,omitempty"`
	CreatedBy        *string   `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("service not found")

// with pointers if optional, it will be nil
type ListFilter struct {
	Category *string
	Search   *string
	Limit    int
	Offset   int
}

type CreateServiceRequest struct {
	Name             string   `json:"name" binding:"required,min=3,max=160"`
	Description      string   `json:"description" binding:"required,max=2000"`
	Location         Location `json:"location" binding:"required"`
	Category         string   `json:"category" binding:"required,min=2,max=80"`
	VolunteersNeeded int      `json:"volunteersNeeded" binding:"min=0,max=50000"`
	Date             string   `json:"date" binding:"required,datetime=2006-01-02"`
	Time             string   `json:"time" binding:"required,datetime=15:04"`
	Organizer        string   `json:"organizer" binding:"required,min=2,max=160"`
	Requirements     []string `json:"requirements" binding:"omitempty,dive,min=1,max=200"`
	Image            string   `json:"image" binding:"omitempty,url,max=500"`
}
