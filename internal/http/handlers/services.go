package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/volunteerhub/api/internal/cache"
	"github.com/volunteerhub/api/internal/config"
	"github.com/volunteerhub/api/internal/domain/service"
	"github.com/volunteerhub/api/internal/http/middlewares"
	"github.com/volunteerhub/api/internal/observability"
	"github.com/volunteerhub/api/internal/utils"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ServicesStore interface {
	Create(ctx context.Context, req service.CreateServiceRequest, creatorID string) (service.Service, error)
	List(ctx context.Context, filter service.ListFilter) ([]service.Service, int, error)
}

type ServicesHandler struct {
	repo  ServicesStore
	cache cache.Store
	prom  *observability.Prom
}

func NewServicesHandler(repo ServicesStore, c cache.Store, prom *observability.Prom) *ServicesHandler {
	return &ServicesHandler{repo: repo, cache: c, prom: prom}
}

type servicesListResponse struct {
	Items []service.Service `json:"items"`
	Count int               `json:"count"`
}

func (h *ServicesHandler) List(ctx *gin.Context) {
	filter := listFilterFromQuery(ctx)

	key := utils.BuildServicesListCacheKey(filter.Category, filter.Search, filter.Limit, filter.Offset)

	if h.cache != nil {
		if raw, ok := h.cache.Get(ctx.Request.Context(), key); ok {
			var cached servicesListResponse

			if err := json.Unmarshal(raw, &cached); err == nil {
				if h.prom != nil {
					h.prom.CacheHits.WithLabelValues("services_list").Inc()
				}
				RespondJSONWithETag(ctx, http.StatusOK, cached)
				return
			}
		}

		if h.prom != nil {
			h.prom.CacheMisses.WithLabelValues("services_list").Inc()
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, total, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list services")
		return
	}

	resp := servicesListResponse{Items: items, Count: total}

	if h.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			h.cache.Set(ctx.Request.Context(), key, raw)
		}
	}

	RespondJSONWithETag(ctx, http.StatusOK, resp)
}

func (h *ServicesHandler) Create(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req service.CreateServiceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req, userID)

	if err != nil {
		RespondInternal(ctx, "Could not create service")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx.Request.Context())
	}

	ctx.JSON(http.StatusCreated, created)
}

func listFilterFromQuery(ctx *gin.Context) service.ListFilter {
	filter := service.ListFilter{
		Limit: defaultListLimit,
	}

	if category := strings.TrimSpace(ctx.Query("category")); category != "" {
		filter.Category = &category
	}

	if search := strings.TrimSpace(ctx.Query("search")); search != "" {
		filter.Search = &search
	}

	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filter.Limit = min(n, maxListLimit)
		}
	}

	if raw := ctx.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	return filter
}
