package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/volunteerhub/api/internal/domain/message"
)

type MessagesRepo struct {
	mu    sync.RWMutex
	items []message.Message
}

func NewMessagesRepo() *MessagesRepo {
	return &MessagesRepo{items: make([]message.Message, 0)}
}

func (r *MessagesRepo) Create(_ context.Context, senderID, receiverID, content string) (message.Message, error) {
	m := message.New(senderID, receiverID, content)

	r.mu.Lock()
	r.items = append(r.items, m)
	r.mu.Unlock()

	return m, nil
}

func (r *MessagesRepo) ListForUser(_ context.Context, userID string) ([]message.Message, error) {
	r.mu.RLock()

	out := make([]message.Message, 0)

	for _, m := range r.items {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *MessagesRepo) MarkRead(_ context.Context, messageID, receiverID string) (message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.items {
		if m.ID == messageID && m.ReceiverID == receiverID {
			r.items[i].Read = true
			return r.items[i], nil
		}
	}

	return message.Message{}, message.ErrNotFound
}
