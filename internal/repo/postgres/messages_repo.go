package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/api/internal/domain/message"
	"github.com/volunteerhub/api/internal/observability"
)

type MessagesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMessagesRepo(pool *pgxpool.Pool, prom *observability.Prom) *MessagesRepo {
	return &MessagesRepo{pool: pool, prom: prom}
}

func (r *MessagesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *MessagesRepo) Create(ctx context.Context, senderID, receiverID, content string) (message.Message, error) {
	m := message.New(senderID, receiverID, content)

	err := r.observe("messages.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO messages (id, sender_id, receiver_id, content, read, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			m.ID, m.SenderID, m.ReceiverID, m.Content, m.Read, m.CreatedAt,
		)
		return e
	})

	if err != nil {
		return message.Message{}, err
	}

	return m, nil
}

// ListForUser returns every message the user sent or received,
// most recent first.
func (r *MessagesRepo) ListForUser(ctx context.Context, userID string) ([]message.Message, error) {
	var rows pgx.Rows

	err := r.observe("messages.list_for_user", func() error {
		var e error
		rows, e = r.pool.Query(ctx,
			`SELECT id, sender_id, receiver_id, content, read, created_at
			 FROM messages
			 WHERE sender_id = $1 OR receiver_id = $1
			 ORDER BY created_at DESC, id DESC`,
			userID,
		)
		return e
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]message.Message, 0)

	for rows.Next() {
		var m message.Message

		e := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt)

		if e != nil {
			return nil, e
		}
		out = append(out, m)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return out, nil
}

// MarkRead flips the read flag. Scoped to the receiver so a sender (or a
// third party) cannot mark someone else's inbox.
func (r *MessagesRepo) MarkRead(ctx context.Context, messageID, receiverID string) (message.Message, error) {
	var m message.Message

	err := r.observe("messages.mark_read", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE messages SET read = TRUE
			 WHERE id = $1 AND receiver_id = $2
			 RETURNING id, sender_id, receiver_id, content, read, created_at`,
			messageID, receiverID,
		).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return message.Message{}, message.ErrNotFound
		}

		return message.Message{}, err
	}

	return m, nil
}
