package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/umalmyha/crm/internal/model"
)

// Action is kind of service record mutation
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Entry is single journaled mutation of service record
type Entry struct {
	RecordID string
	Action   Action
	Record   *model.ServiceRecord
	Actor    string
	At       time.Time
}

// Journal appends service record mutations to durable audit log
type Journal interface {
	Append(context.Context, Entry) error
}

const schema = `CREATE TABLE IF NOT EXISTS service_record_journal (
	id         BIGSERIAL PRIMARY KEY,
	record_id  TEXT        NOT NULL,
	action     TEXT        NOT NULL,
	payload    JSONB,
	actor      TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates journal table if it doesn't exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create journal table - %w", err)
	}
	return nil
}

type postgresJournal struct {
	pool *pgxpool.Pool
}

// NewPostgresJournal builds Journal over postgres pool
func NewPostgresJournal(p *pgxpool.Pool) Journal {
	return &postgresJournal{pool: p}
}

func (j *postgresJournal) Append(ctx context.Context, e Entry) error {
	var payload *string
	if e.Record != nil {
		encoded, err := json.Marshal(e.Record)
		if err != nil {
			return err
		}
		s := string(encoded)
		payload = &s
	}

	q := `INSERT INTO service_record_journal(record_id, action, payload, actor, created_at)
		  VALUES($1, $2, $3::jsonb, $4, $5)`
	if _, err := j.pool.Exec(ctx, q, e.RecordID, string(e.Action), payload, e.Actor, e.At.UTC()); err != nil {
		return err
	}
	return nil
}
