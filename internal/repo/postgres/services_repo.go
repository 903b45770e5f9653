package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/api/internal/domain/service"
	"github.com/volunteerhub/api/internal/observability"
)

type ServicesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewServicesRepo(pool *pgxpool.Pool, prom *observability.Prom) *ServicesRepo {
	return &ServicesRepo{pool: pool, prom: prom}
}

func (r *ServicesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const serviceColumns = `id, name, description, location_lat, location_lng, location_address, category, volunteers_needed, date, time, organizer, requirements, image, created_by, created_at, updated_at`

func scanService(row pgx.Row, extra ...interface{}) (service.Service, error) {
	var s service.Service

	dest := []interface{}{
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Location.Lat,
		&s.Location.Lng,
		&s.Location.Address,
		&s.Category,
		&s.VolunteersNeeded,
		&s.Date,
		&s.Time,
		&s.Organizer,
		&s.Requirements,
		&s.Image,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
	dest = append(dest, extra...)

	return s, row.Scan(dest...)
}

func (r *ServicesRepo) Create(ctx context.Context, req service.CreateServiceRequest, creatorID string) (service.Service, error) {
	s := service.NewFromCreateRequest(req, creatorID)

	err := r.observe("services.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO services (`+serviceColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			s.ID, s.Name, s.Description, s.Location.Lat, s.Location.Lng, s.Location.Address,
			s.Category, s.VolunteersNeeded, s.Date, s.Time, s.Organizer, s.Requirements,
			s.Image, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
		)
		return e
	})

	if err != nil {
		return service.Service{}, err
	}

	return s, nil
}

// List applies the catalog filters: category is an exact case-insensitive
// match ("all" means no filter), search is a case-insensitive substring match
// on name, description or address. Filters compose with AND.
func (r *ServicesRepo) List(ctx context.Context, filter service.ListFilter) ([]service.Service, int, error) {
	baseQuery := `SELECT ` + serviceColumns + `, COUNT(*) OVER() AS total FROM services`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.Category != nil && !strings.EqualFold(*filter.Category, "all") {
		conds = append(conds, fmt.Sprintf("LOWER(category) = LOWER($%d)", argsPosition))
		args = append(args, *filter.Category)
		argsPosition++
	}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR location_address ILIKE $%d)",
			argsPosition, argsPosition, argsPosition,
		))
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		argsPosition++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// stable ordering: soonest scheduled first
	query += fmt.Sprintf(" ORDER BY date ASC, time ASC, id ASC LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)

	args = append(args, filter.Limit, filter.Offset)

	var rows pgx.Rows

	err := r.observe("services.list", func() error {
		var e error
		rows, e = r.pool.Query(ctx, query, args...)
		return e
	})

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	out := make([]service.Service, 0, filter.Limit)
	total := 0

	for rows.Next() {
		var t int

		s, e := scanService(rows, &t)

		if e != nil {
			return nil, 0, e
		}

		total = t
		out = append(out, s)
	}

	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return out, total, nil
}

func (r *ServicesRepo) GetByID(ctx context.Context, id string) (service.Service, error) {
	var s service.Service

	err := r.observe("services.get_by_id", func() error {
		var e error
		s, e = scanService(r.pool.QueryRow(ctx,
			`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.Service{}, service.ErrNotFound
		}

		return service.Service{}, err
	}

	return s, nil
}
