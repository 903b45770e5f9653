package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/volunteerhub/api/internal/cache"
	"github.com/volunteerhub/api/internal/config"
	"github.com/volunteerhub/api/internal/domain/registration"
	"github.com/volunteerhub/api/internal/domain/service"
	"github.com/volunteerhub/api/internal/domain/user"
	"github.com/volunteerhub/api/internal/http/middlewares"
	"github.com/volunteerhub/api/internal/utils"
)

type UserLister interface {
	List(ctx context.Context) ([]user.User, error)
}

type VolunteerSignup interface {
	RegisterVolunteer(ctx context.Context, userID, serviceID string) (registration.SignupResult, error)
}

type VolunteersHandler struct {
	users   UserLister
	signups VolunteerSignup
	cache   cache.Store
}

func NewVolunteersHandler(users UserLister, signups VolunteerSignup, c cache.Store) *VolunteersHandler {
	return &VolunteersHandler{users: users, signups: signups, cache: c}
}

// List is the volunteer directory. Password hashes never serialize
// (json:"-" on the domain type).
func (h *VolunteersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	volunteers, err := h.users.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list volunteers")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": volunteers,
		"count": len(volunteers),
	})
}

// SignUp registers the caller as a volunteer for a service. Signing up twice
// is an idempotent success; the needed count only moves on the first one.
func (h *VolunteersHandler) SignUp(ctx *gin.Context) {
	serviceID := ctx.Param("serviceId")

	if !utils.IsUUID(serviceID) {
		RespondBadRequest(ctx, "invalid_id", "service id must be a valid UUID", nil)
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	res, err := h.signups.RegisterVolunteer(cctx, userID, serviceID)

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			RespondNotFound(ctx, "Service not found")
			return
		}

		RespondInternal(ctx, "Could not volunteer for service")
		return
	}

	if !res.AlreadyRegistered && h.cache != nil {
		// needed count changed, listings are stale
		h.cache.Invalidate(ctx.Request.Context())
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":           "Successfully volunteered for service",
		"registration":      res.Registration,
		"alreadyRegistered": res.AlreadyRegistered,
	})
}
