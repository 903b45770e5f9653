package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/api/internal/config"
	"github.com/volunteerhub/api/internal/domain/service"
	"github.com/volunteerhub/api/internal/security"
)

// EnsureAdminUser creates the configured admin account if it does not exist.
// A no-op when the admin credentials are unset.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, skills, interests, location, phone, profile_image, joined_at, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		uuid.NewString(), cfg.AdminName, cfg.AdminEmail, hash,
		[]string{}, []string{}, "", "", "", now, now, now,
	)

	return err
}

// DemoServices is the starter catalog shown on a fresh install.
func DemoServices() []service.Service {
	now := time.Now().UTC()

	build := func(req service.CreateServiceRequest) service.Service {
		s := service.NewFromCreateRequest(req, "")
		s.CreatedAt = now
		s.UpdatedAt = now
		return s
	}

	return []service.Service{
		build(service.CreateServiceRequest{
			Name:             "Food Bank Distribution",
			Description:      "Help distribute food to families in need",
			Location:         service.Location{Lat: 40.7128, Lng: -74.0060, Address: "New York, NY"},
			Category:         "Community Support",
			VolunteersNeeded: 5,
			Date:             "2024-01-15",
			Time:             "09:00",
			Organizer:        "NYC Food Bank",
			Requirements:     []string{"Physical ability", "Compassion"},
			Image:            "https://images.pexels.com/photos/6646917/pexels-photo-6646917.jpeg?auto=compress&cs=tinysrgb&w=500",
		}),
		build(service.CreateServiceRequest{
			Name:             "Beach Cleanup Initiative",
			Description:      "Join us in cleaning up the local beach and protecting marine life",
			Location:         service.Location{Lat: 34.0522, Lng: -118.2437, Address: "Los Angeles, CA"},
			Category:         "Environmental",
			VolunteersNeeded: 15,
			Date:             "2024-01-20",
			Time:             "08:00",
			Organizer:        "Ocean Conservation Group",
			Requirements:     []string{"Physical fitness", "Environmental awareness"},
			Image:            "https://images.pexels.com/photos/2547565/pexels-photo-2547565.jpeg?auto=compress&cs=tinysrgb&w=500",
		}),
		build(service.CreateServiceRequest{
			Name:             "Senior Center Activities",
			Description:      "Spend time with seniors and assist with daily activities",
			Location:         service.Location{Lat: 41.8781, Lng: -87.6298, Address: "Chicago, IL"},
			Category:         "Elder Care",
			VolunteersNeeded: 8,
			Date:             "2024-01-18",
			Time:             "14:00",
			Organizer:        "Golden Years Center",
			Requirements:     []string{"Patience", "Communication skills"},
			Image:            "https://images.pexels.com/photos/339620/pexels-photo-339620.jpeg?auto=compress&cs=tinysrgb&w=500",
		}),
		build(service.CreateServiceRequest{
			Name:             "Youth Tutoring Program",
			Description:      "Help local students with homework and reading skills",
			Location:         service.Location{Lat: 39.9526, Lng: -75.1652, Address: "Philadelphia, PA"},
			Category:         "Education",
			VolunteersNeeded: 10,
			Date:             "2024-01-22",
			Time:             "16:00",
			Organizer:        "Community Learning Center",
			Requirements:     []string{"Teaching experience preferred", "Background check required"},
			Image:            "https://images.pexels.com/photos/8617741/pexels-photo-8617741.jpeg?auto=compress&cs=tinysrgb&w=500",
		}),
	}
}

// SeedDemoServices inserts the starter catalog once. Keyed off the table
// being empty rather than a flag row.
func SeedDemoServices(ctx context.Context, pool *pgxpool.Pool) error {
	var count int

	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	for _, s := range DemoServices() {
		_, err := pool.Exec(ctx,
			`INSERT INTO services (id, name, description, location_lat, location_lng, location_address, category, volunteers_needed, date, time, organizer, requirements, image, created_by, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			s.ID, s.Name, s.Description, s.Location.Lat, s.Location.Lng, s.Location.Address,
			s.Category, s.VolunteersNeeded, s.Date, s.Time, s.Organizer, s.Requirements,
			s.Image, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
		)

		if err != nil {
			return err
		}
	}

	return nil
}
