package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: accounts must be created BEFORE plans due to the foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    goal_target_weight REAL,
    goal_type TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    owner_username TEXT NOT NULL,
    kind TEXT NOT NULL,
    label TEXT NOT NULL,
    duration INTEGER NOT NULL,
    rendered_text TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (owner_username) REFERENCES accounts(username) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_plans_owner_username ON plans(owner_username);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
