package broadcast

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	pgMinReconnect = 10 * time.Second
	pgMaxReconnect = time.Minute
	// pgPingInterval keeps an idle listener connection verified.
	pgPingInterval = 90 * time.Second

	// pgNotifyLimit stays under the 8000 byte payload cap of pg_notify.
	pgNotifyLimit = 7900
	// pgSpillRetention bounds how long a spilled payload waits for its listeners.
	pgSpillRetention = time.Minute
	// pgSpillRef prefixes notifications that carry a payload row id. Envelopes
	// are JSON objects, so the prefix never collides with an inline message.
	pgSpillRef = "ref:"
)

const createSpillTable = `CREATE TABLE IF NOT EXISTS realtime_payloads (
	id         BIGSERIAL PRIMARY KEY,
	body       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PGBus relays through PostgreSQL LISTEN/NOTIFY. Messages too large for
// pg_notify are written to realtime_payloads and only their row id is notified.
type PGBus struct {
	db      *sql.DB
	dsn     string
	channel string
	logger  *slog.Logger
}

// NewPGBus publishes through db and listens with a dedicated connection opened
// from dsn. It creates the spill table when missing.
func NewPGBus(ctx context.Context, db *sql.DB, dsn, channel string, logger *slog.Logger) (*PGBus, error) {
	if _, err := db.ExecContext(ctx, createSpillTable); err != nil {
		return nil, fmt.Errorf("create realtime_payloads: %w", err)
	}
	return &PGBus{
		db:      db,
		dsn:     dsn,
		channel: channel,
		logger:  logger.With("component", "pg-bus"),
	}, nil
}

func (b *PGBus) Publish(ctx context.Context, message []byte) error {
	if len(message) < pgNotifyLimit {
		return b.notify(ctx, string(message))
	}

	var id int64
	err := b.db.QueryRowContext(ctx,
		"INSERT INTO realtime_payloads (body) VALUES ($1) RETURNING id", string(message)).Scan(&id)
	if err != nil {
		return fmt.Errorf("spill payload: %w", err)
	}
	if err = b.notify(ctx, pgSpillRef+strconv.FormatInt(id, 10)); err != nil {
		return err
	}

	_, err = b.db.ExecContext(ctx,
		"DELETE FROM realtime_payloads WHERE created_at < now() - make_interval(secs => $1)",
		pgSpillRetention.Seconds())
	if err != nil {
		b.logger.Warn("failed to prune spilled payloads", "error", err)
	}
	return nil
}

func (b *PGBus) notify(ctx context.Context, payload string) error {
	_, err := b.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", b.channel, payload)
	return err
}

func (b *PGBus) Subscribe(ctx context.Context, handle func(message []byte)) error {
	listener := pq.NewListener(b.dsn, pgMinReconnect, pgMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			b.logger.Warn("listener event", "event", ev, "error", err)
		}
	})
	defer listener.Close()

	if err := listener.Listen(b.channel); err != nil {
		return fmt.Errorf("listen %s: %w", b.channel, err)
	}

	ticker := time.NewTicker(pgPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n, ok := <-listener.Notify:
			if !ok {
				return ErrBusClosed
			}
			// nil after a reconnect; notifications sent meanwhile are lost.
			if n == nil {
				continue
			}
			message, err := b.resolve(ctx, n.Extra)
			if err != nil {
				b.logger.Warn("dropping notification", "error", err)
				continue
			}
			handle(message)
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				b.logger.Warn("listener ping failed", "error", err)
			}
		}
	}
}

// resolve returns the message a notification stands for.
func (b *PGBus) resolve(ctx context.Context, payload string) ([]byte, error) {
	ref, spilled := strings.CutPrefix(payload, pgSpillRef)
	if !spilled {
		return []byte(payload), nil
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad payload ref %q: %w", ref, err)
	}
	var body string
	if err = b.db.QueryRowContext(ctx, "SELECT body FROM realtime_payloads WHERE id = $1", id).Scan(&body); err != nil {
		return nil, fmt.Errorf("load payload %d: %w", id, err)
	}
	return []byte(body), nil
}

// Close is a no-op: the publishing pool belongs to the caller and listeners
// close with their Subscribe.
func (b *PGBus) Close() error {
	return nil
}
