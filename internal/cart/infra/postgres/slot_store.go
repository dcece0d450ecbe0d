// Package postgres persists cart slots in a PostgreSQL key/value table.
// The store can run on a pgx pool, a database/sql handle or a sqlx handle.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/infra/postgres/internal/adapters"
)

const (
	DefaultTableName = "storage_slots"

	dialectPostgres = "postgres"
	colKey          = "key"
	colValue        = "value"
	colUpdatedAt    = "updated_at"
	excludedValue   = "EXCLUDED.value"
	sqlNow          = "NOW()"

	logMsgBuildQueryFailed = "failed to build slot query"
	logMsgDBQueryFailed    = "slot query failed"
	logMsgDBExecFailed     = "slot upsert failed"
	logMsgCloseRowsFailed  = "failed to close slot rows"
	logMsgSQLExecuted      = "executed sql"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrKey             = "key"
	logAttrDurationMS      = "duration_ms"
	logAttrOp              = "op"
	logAttrTable           = "table"
	logOpEnsureSchema      = "ensure_schema"
	logOpGet               = "get"
	logOpSet               = "set"
)

var (
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
	ErrInvalidTableName      = errors.New("slot table name must be a plain lowercase identifier")
	ErrBuildingQueryFailed   = errors.New("building slot query failed")
	ErrQueryFailed           = errors.New("querying slot failed")
	ErrWriteFailed           = errors.New("writing slot failed")

	tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)
)

type SlotStore struct {
	db        adapters.DBAdapter
	tableName string
	logger    *slog.Logger
}

type Option func(*SlotStore) error

func WithTableName(tableName string) Option {
	return func(s *SlotStore) error {
		if !tableNamePattern.MatchString(tableName) {
			return ErrInvalidTableName
		}
		s.tableName = tableName
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *SlotStore) error {
		s.logger = logger
		return nil
	}
}

func NewSlotStoreFromPGXPool(pool *pgxpool.Pool, options ...Option) (*SlotStore, error) {
	if pool == nil {
		return nil, ErrNilDatabaseConnection
	}
	return newSlotStore(adapters.NewPGXAdapter(pool), options...)
}

func NewSlotStoreFromSQLDB(db *sql.DB, options ...Option) (*SlotStore, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}
	return newSlotStore(adapters.NewSQLAdapter(db), options...)
}

func NewSlotStoreFromSQLX(db *sqlx.DB, options ...Option) (*SlotStore, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}
	return newSlotStore(adapters.NewSQLXAdapter(db), options...)
}

func newSlotStore(db adapters.DBAdapter, options ...Option) (*SlotStore, error) {
	s := &SlotStore{
		db:        db,
		tableName: DefaultTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// EnsureSchema creates the slot table when it does not exist yet.
func (s *SlotStore) EnsureSchema(ctx context.Context) error {
	query := s.buildCreateTableQuery()

	start := time.Now()
	_, err := s.db.Exec(ctx, query)
	s.logQuery(logOpEnsureSchema, "", time.Since(start))

	if err != nil {
		s.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, query)
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, error) {
	query, err := s.buildSelectQuery(key)
	if err != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, err.Error(), logAttrKey, key)
		return "", err
	}

	start := time.Now()
	rows, err := s.db.Query(ctx, query)
	s.logQuery(logOpGet, key, time.Since(start))
	if err != nil {
		s.logError(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, query)
		return "", errors.Join(ErrQueryFailed, err)
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", errors.Join(ErrQueryFailed, err)
		}
		return "", app.ErrSlotNotFound
	}

	var value string
	if err := rows.Scan(&value); err != nil {
		return "", errors.Join(ErrQueryFailed, err)
	}
	return value, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	query, err := s.buildUpsertQuery(key, value)
	if err != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, err.Error(), logAttrKey, key)
		return err
	}

	start := time.Now()
	_, err = s.db.Exec(ctx, query)
	s.logQuery(logOpSet, key, time.Since(start))
	if err != nil {
		s.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrKey, key)
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (s *SlotStore) buildCreateTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS ` + s.tableName + ` (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
}

func (s *SlotStore) buildSelectQuery(key string) (string, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colValue).
		Where(goqu.C(colKey).Eq(key)).
		Limit(1)

	query, _, err := stmt.ToSQL()
	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}
	return query, nil
}

func (s *SlotStore) buildUpsertQuery(key, value string) (string, error) {
	stmt := goqu.Dialect(dialectPostgres).
		Insert(s.tableName).
		Rows(goqu.Record{
			colKey:       key,
			colValue:     value,
			colUpdatedAt: goqu.L(sqlNow),
		}).
		OnConflict(goqu.DoUpdate(colKey, goqu.Record{
			colValue:     goqu.L(excludedValue),
			colUpdatedAt: goqu.L(sqlNow),
		}))

	query, _, err := stmt.ToSQL()
	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}
	return query, nil
}

func (s *SlotStore) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil && s.logger != nil {
		s.logger.Warn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

// logQuery never logs the statement itself: upserts carry the whole cart.
func (s *SlotStore) logQuery(op, key string, d time.Duration) {
	if s.logger == nil {
		return
	}

	args := []any{logAttrOp, op, logAttrTable, s.tableName, logAttrDurationMS, float64(d.Microseconds()) / 1000.0}
	if key != "" {
		args = append(args, logAttrKey, key)
	}
	s.logger.Debug(logMsgSQLExecuted, args...)
}

func (s *SlotStore) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
