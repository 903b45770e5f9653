package registration

import (
	"time"

	"github.com/google/uuid"
)

// Registration links one user to one service. At most one row exists per
// (user, service) pair; rows are created only through the volunteer signup.
type Registration struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ServiceID    string    `json:"serviceId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// SignupResult reports what a volunteer signup actually did. A repeat signup
// is an idempotent success: no new row, no second decrement.
type SignupResult struct {
	Registration      Registration
	AlreadyRegistered bool
}

func New(userID, serviceID string) Registration {
	return Registration{
		ID:           uuid.NewString(),
		UserID:       userID,
		ServiceID:    serviceID,
		RegisteredAt: time.Now().UTC(),
	}
}
