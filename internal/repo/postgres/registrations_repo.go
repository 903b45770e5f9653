package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/api/internal/domain/registration"
	"github.com/volunteerhub/api/internal/domain/service"
	"github.com/volunteerhub/api/internal/observability"
)

type RegistrationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRegistrationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{pool: pool, prom: prom}
}

func (r *RegistrationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// RegisterVolunteer signs a user up for a service. The duplicate check and
// the needed-count decrement happen inside one transaction holding a row lock
// on the service, so a racing duplicate signup can never decrement twice.
// A repeat signup returns the existing row with AlreadyRegistered set.
func (r *RegistrationsRepo) RegisterVolunteer(ctx context.Context, userID, serviceID string) (res registration.SignupResult, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() { _ = tx.Rollback(ctx) }()

	// lock the service row; 404 before any state can change
	var dummy string
	err = r.observe("registrations.signup.lock_service", func() error {
		return tx.QueryRow(ctx,
			`SELECT id FROM services WHERE id = $1 FOR UPDATE`, serviceID,
		).Scan(&dummy)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = service.ErrNotFound
		}
		return
	}

	reg := registration.New(userID, serviceID)

	var inserted int64

	err = r.observe("registrations.signup.insert", func() error {
		tag, e := tx.Exec(ctx,
			`INSERT INTO volunteer_registrations (id, user_id, service_id, registered_at)
			 VALUES ($1,$2,$3,$4)
			 ON CONFLICT (user_id, service_id) DO NOTHING`,
			reg.ID, reg.UserID, reg.ServiceID, reg.RegisteredAt,
		)
		inserted = tag.RowsAffected()
		return e
	})

	if err != nil {
		return
	}

	if inserted == 0 {
		// idempotent repeat: surface the existing row, decrement nothing
		var existing registration.Registration

		err = r.observe("registrations.signup.fetch_existing", func() error {
			return tx.QueryRow(ctx,
				`SELECT id, user_id, service_id, registered_at
				 FROM volunteer_registrations
				 WHERE user_id = $1 AND service_id = $2`,
				userID, serviceID,
			).Scan(&existing.ID, &existing.UserID, &existing.ServiceID, &existing.RegisteredAt)
		})

		if err != nil {
			return
		}

		if err = tx.Commit(ctx); err != nil {
			return
		}

		res = registration.SignupResult{Registration: existing, AlreadyRegistered: true}
		return
	}

	// first signup only: decrement the needed count, floored at zero
	err = r.observe("registrations.signup.decrement", func() error {
		_, e := tx.Exec(ctx,
			`UPDATE services
			 SET volunteers_needed = GREATEST(volunteers_needed - 1, 0),
			     updated_at = NOW()
			 WHERE id = $1`,
			serviceID,
		)
		return e
	})

	if err != nil {
		return
	}

	if err = tx.Commit(ctx); err != nil {
		return
	}

	res = registration.SignupResult{Registration: reg}
	return
}

func (r *RegistrationsRepo) CountForService(ctx context.Context, serviceID string) (int, error) {
	var total int

	err := r.observe("registrations.count_for_service", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM volunteer_registrations WHERE service_id = $1`,
			serviceID,
		).Scan(&total)
	})

	return total, err
}
