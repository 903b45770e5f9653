package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/volunteerhub/api/internal/domain/user"
)

// UsersRepo is the in-memory credential store used by the demo server and
// tests. Unlike the process-wide arrays it replaces, access is lock-guarded.
type UsersRepo struct {
	mu      sync.RWMutex
	items   map[string]user.User // by id
	byEmail map[string]string    // email -> id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:   make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func (r *UsersRepo) Create(_ context.Context, params user.CreateUserParams) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[params.Email]; exists {
		return user.User{}, user.ErrEmailTaken
	}

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

	r.items[u.ID] = u
	r.byEmail[u.Email] = u.ID

	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return r.items[id], nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))

	for _, u := range r.items {
		out = append(out, u)
	}

	// newest members first, id as tiebreaker for stable output
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *UsersRepo) Update(_ context.Context, id string, req user.UpdateProfileRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Skills != nil {
		u.Skills = *req.Skills
	}
	if req.Interests != nil {
		u.Interests = *req.Interests
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.ProfileImage != nil {
		u.ProfileImage = *req.ProfileImage
	}

	if !req.Empty() {
		u.UpdatedAt = time.Now().UTC()
	}

	r.items[id] = u

	return u, nil
}
