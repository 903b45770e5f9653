package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/volunteerhub/api/internal/config"
	"github.com/volunteerhub/api/internal/domain/message"
	"github.com/volunteerhub/api/internal/http/middlewares"
	"github.com/volunteerhub/api/internal/utils"
)

type MessagesStore interface {
	Create(ctx context.Context, senderID, receiverID, content string) (message.Message, error)
	ListForUser(ctx context.Context, userID string) ([]message.Message, error)
	MarkRead(ctx context.Context, messageID, receiverID string) (message.Message, error)
}

type MessagesHandler struct {
	repo MessagesStore
}

func NewMessagesHandler(repo MessagesStore) *MessagesHandler {
	return &MessagesHandler{repo: repo}
}

// List returns every message the caller sent or received, newest first.
func (h *MessagesHandler) List(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	msgs, err := h.repo.ListForUser(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list messages")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": msgs,
		"count": len(msgs),
	})
}

func (h *MessagesHandler) Send(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req message.SendMessageRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.ReceiverID == userID {
		RespondBadRequest(ctx, "invalid_receiver", "Cannot message yourself", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.Create(cctx, userID, req.ReceiverID, req.Content)

	if err != nil {
		RespondInternal(ctx, "Could not send message")
		return
	}

	ctx.JSON(http.StatusCreated, m)
}

// MarkRead flips the read flag on a message the caller received. The read
// flag is the only mutable part of a message.
func (h *MessagesHandler) MarkRead(ctx *gin.Context) {
	messageID := ctx.Param("id")

	if !utils.IsUUID(messageID) {
		RespondBadRequest(ctx, "invalid_id", "message id must be a valid UUID", nil)
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.MarkRead(cctx, messageID, userID)

	if err != nil {
		if errors.Is(err, message.ErrNotFound) {
			RespondNotFound(ctx, "Message not found")
			return
		}

		RespondInternal(ctx, "Could not mark message as read")
		return
	}

	ctx.JSON(http.StatusOK, m)
}
