package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/api/internal/domain/user"
	"github.com/volunteerhub/api/internal/observability"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const userColumns = `id, name, email, password_hash, skills, interests, location, phone, profile_image, joined_at, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Skills,
		&u.Interests,
		&u.Location,
		&u.Phone,
		&u.ProfileImage,
		&u.JoinedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (r *UsersRepo) Create(ctx context.Context, params user.CreateUserParams) (user.User, error) {
	now := time.Now().UTC()

	skills := params.Skills
	if skills == nil {
		skills = []string{}
	}
	interests := params.Interests
	if interests == nil {
		interests = []string{}
	}

	u := user.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Skills:       skills,
		Interests:    interests,
		Location:     params.Location,
		Phone:        params.Phone,
		ProfileImage: params.ProfileImage,
		JoinedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.observe("users.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO users (`+userColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.Skills, u.Interests,
			u.Location, u.Phone, u.ProfileImage, u.JoinedAt, u.CreatedAt, u.UpdatedAt,
		)
		return e
	})

	if err != nil {
		if IsUniqueViolation(err, "users_email_key") {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		var e error
		u, e = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		var e error
		u, e = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

// List returns the volunteer directory, newest members first.
func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var rows pgx.Rows

	err := r.observe("users.list", func() error {
		var e error
		rows, e = r.pool.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
		return e
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]user.User, 0)

	for rows.Next() {
		u, e := scanUser(rows)

		if e != nil {
			return nil, e
		}
		out = append(out, u)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return out, nil
}

// Update applies an allow-listed partial profile update. Only the fields
// present in the request are written; everything else is untouchable here.
func (r *UsersRepo) Update(ctx context.Context, id string, req user.UpdateProfileRequest) (user.User, error) {
	if req.Empty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	var args []interface{}

	argsPosition := 1

	add := func(column string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argsPosition))
		args = append(args, val)
		argsPosition++
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Skills != nil {
		add("skills", *req.Skills)
	}
	if req.Interests != nil {
		add("interests", *req.Interests)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.ProfileImage != nil {
		add("profile_image", *req.ProfileImage)
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = NOW() WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), argsPosition,
	)
	args = append(args, id)

	var u user.User

	err := r.observe("users.update", func() error {
		var e error
		u, e = scanUser(r.pool.QueryRow(ctx, query, args...))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}
