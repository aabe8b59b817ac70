package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
//
// Emails are deliberately not UNIQUE: duplicate signups are accepted at the
// store layer. ToDos carry no foreign key to task_lists so that deleting a
// list leaves its to-dos behind as dangling rows, which resolve to an absent
// parent on read.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		avatar TEXT,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS task_lists (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS task_list_members (
		task_list_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (task_list_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS todos (
		id TEXT NOT NULL PRIMARY KEY,
		content TEXT NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		task_list_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_todos_task_list_id ON todos(task_list_id);
	CREATE INDEX IF NOT EXISTS idx_members_user_id ON task_list_members(user_id);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
