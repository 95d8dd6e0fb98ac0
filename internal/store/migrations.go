package store

const schema = `
-- Every record lives in a single table; the key carries the namespace.
CREATE TABLE IF NOT EXISTS kv (
    key         TEXT    PRIMARY KEY,
    value       BLOB    NOT NULL,
    updated_at  INTEGER NOT NULL
) WITHOUT ROWID;
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key         TEXT        PRIMARY KEY,
    value       JSONB       NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`
