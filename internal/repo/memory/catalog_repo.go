package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/volunteerhub/api/internal/domain/registration"
	"github.com/volunteerhub/api/internal/domain/service"
)

// Catalog holds services and their volunteer registrations under a single
// mutex, so the signup duplicate check and the needed-count decrement are
// one atomic step, same as the transactional Postgres path.
type Catalog struct {
	mu            sync.RWMutex
	services      map[string]service.Service
	registrations map[string]registration.Registration // keyed user|service
}

func NewCatalog() *Catalog {
	return &Catalog{
		services:      make(map[string]service.Service),
		registrations: make(map[string]registration.Registration),
	}
}

func regKey(userID, serviceID string) string {
	return userID + "|" + serviceID
}

func (c *Catalog) Create(_ context.Context, req service.CreateServiceRequest, creatorID string) (service.Service, error) {
	s := service.NewFromCreateRequest(req, creatorID)

	c.mu.Lock()
	c.services[s.ID] = s
	c.mu.Unlock()

	return s, nil
}

// Put inserts a prebuilt service. Used by the demo seeder.
func (c *Catalog) Put(s service.Service) {
	c.mu.Lock()
	c.services[s.ID] = s
	c.mu.Unlock()
}

func (c *Catalog) List(_ context.Context, filter service.ListFilter) ([]service.Service, int, error) {
	c.mu.RLock()

	matched := make([]service.Service, 0, len(c.services))

	for _, s := range c.services {
		if matchesFilter(s, filter) {
			matched = append(matched, s)
		}
	}
	c.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date < matched[j].Date
		}
		if matched[i].Time != matched[j].Time {
			return matched[i].Time < matched[j].Time
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	out := make([]service.Service, len(matched))
	copy(out, matched)

	return out, total, nil
}

func matchesFilter(s service.Service, filter service.ListFilter) bool {
	if filter.Category != nil && !strings.EqualFold(*filter.Category, "all") {
		if !strings.EqualFold(s.Category, *filter.Category) {
			return false
		}
	}

	if filter.Search != nil {
		term := strings.ToLower(strings.TrimSpace(*filter.Search))

		if term != "" {
			haystack := strings.ToLower(s.Name + " " + s.Description + " " + s.Location.Address)

			if !strings.Contains(haystack, term) {
				return false
			}
		}
	}

	return true
}

func (c *Catalog) GetByID(_ context.Context, id string) (service.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.services[id]
	if !ok {
		return service.Service{}, service.ErrNotFound
	}

	return s, nil
}

// RegisterVolunteer mirrors the Postgres transaction: unknown service fails
// before any mutation, a repeat signup is an idempotent no-op, and the
// needed count decrements exactly once per (user, service), floored at zero.
func (c *Catalog) RegisterVolunteer(_ context.Context, userID, serviceID string) (registration.SignupResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.services[serviceID]
	if !ok {
		return registration.SignupResult{}, service.ErrNotFound
	}

	key := regKey(userID, serviceID)

	if existing, dup := c.registrations[key]; dup {
		return registration.SignupResult{Registration: existing, AlreadyRegistered: true}, nil
	}

	reg := registration.New(userID, serviceID)
	c.registrations[key] = reg

	if s.VolunteersNeeded > 0 {
		s.VolunteersNeeded--
	}
	s.UpdatedAt = time.Now().UTC()
	c.services[serviceID] = s

	return registration.SignupResult{Registration: reg}, nil
}

func (c *Catalog) CountForService(_ context.Context, serviceID string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0

	for _, reg := range c.registrations {
		if reg.ServiceID == serviceID {
			total++
		}
	}

	return total, nil
}
