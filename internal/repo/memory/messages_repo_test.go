package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/volunteerhub/api/internal/domain/message"
	"github.com/volunteerhub/api/internal/repo/memory"
)

func TestMessagesListForUser_OnlyOwnTraffic(t *testing.T) {
	repo := memory.NewMessagesRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", "bob", "hi bob"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, "bob", "alice", "hi alice"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, "carol", "dave", "private"); err != nil {
		t.Fatalf("create: %v", err)
	}

	msgs, err := repo.ListForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(msgs) != 2 {
		t.Fatalf("want 2 messages for alice, got %d", len(msgs))
	}

	for _, m := range msgs {
		if m.SenderID != "alice" && m.ReceiverID != "alice" {
			t.Fatalf("leaked someone else's message: %+v", m)
		}
	}
}

func TestMessagesMarkRead_ReceiverOnly(t *testing.T) {
	repo := memory.NewMessagesRepo()
	ctx := context.Background()

	m, err := repo.Create(ctx, "alice", "bob", "hi bob")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if m.Read {
		t.Fatal("new message must start unread")
	}

	// the sender cannot mark their own outbound message read
	if _, err := repo.MarkRead(ctx, m.ID, "alice"); !errors.Is(err, message.ErrNotFound) {
		t.Fatalf("want ErrNotFound for non-receiver, got %v", err)
	}

	read, err := repo.MarkRead(ctx, m.ID, "bob")
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}

	if !read.Read {
		t.Fatal("message should be read after MarkRead")
	}

	if _, err := repo.MarkRead(ctx, "missing", "bob"); !errors.Is(err, message.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown id, got %v", err)
	}
}
