// Package adapters lets the postgres slot store run on top of pgx.Pool,
// sql.DB or sqlx.DB through one small DBAdapter interface.
package adapters
