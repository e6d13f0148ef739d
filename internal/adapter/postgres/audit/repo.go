// Package audit implements the audit ledger using PostgreSQL.
// It provides append-only operations: entries are never updated or deleted.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hammerhouse/auction-backend/internal/adapter/postgres"
	"github.com/hammerhouse/auction-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const auditColumns = "id, tenant_id, actor_id, entity_type, entity_id, action, before, after, metadata, created_at"

type auditRow struct {
	ID         uuid.UUID `db:"id"`
	TenantID   uuid.UUID `db:"tenant_id"`
	ActorID    uuid.UUID `db:"actor_id"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
	Action     string    `db:"action"`
	Before     []byte    `db:"before"`
	After      []byte    `db:"after"`
	Metadata   []byte    `db:"metadata"`
	CreatedAt  time.Time `db:"created_at"`
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new audit record and returns the persisted entry.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	before, err := marshalOrNil(record.Before)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal before: %w", err)
	}
	after, err := marshalOrNil(record.After)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal after: %w", err)
	}
	metadata, err := marshalOrNil(record.Metadata)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal metadata: %w", err)
	}

	sql, args, err := psql.Insert("audit_log").
		Columns("tenant_id", "actor_id", "entity_type", "entity_id", "action", "before", "after", "metadata").
		Values(record.TenantID, record.ActorID, record.EntityType, record.EntityID, record.Action, before, after, metadata).
		Suffix("RETURNING " + auditColumns).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}

	var row auditRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}
	return toDomain(row)
}

// Log creates an audit record without returning it. This is the method the
// state machines and the bid engine call; they treat failures as log-only.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// GetByEntity returns the change history for a specific entity, newest
// first, limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "tenant_id", "actor_id", "entity_type", "entity_id", "action", "before", "after", "metadata", "created_at").
		From("audit_log").
		Where(sq.Eq{"tenant_id": tenantID, "entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "audit_record", entityID)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "audit_record", entityID)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, row := range rows {
		rec, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

func marshalOrNil(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalOrNil(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	m := make(map[string]any)
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func toDomain(row auditRow) (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         row.ID,
		TenantID:   row.TenantID,
		ActorID:    row.ActorID,
		EntityType: domain.EntityType(row.EntityType),
		EntityID:   row.EntityID,
		Action:     domain.AuditAction(row.Action),
		CreatedAt:  row.CreatedAt,
	}

	var err error
	if record.Before, err = unmarshalOrNil(row.Before); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal before: %w", row.ID, err)
	}
	if record.After, err = unmarshalOrNil(row.After); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal after: %w", row.ID, err)
	}
	if record.Metadata, err = unmarshalOrNil(row.Metadata); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal metadata: %w", row.ID, err)
	}
	return record, nil
}
