package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"timekeep/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			last_activity DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			username TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (name, username)
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			init_time DATETIME NOT NULL,
			final_time DATETIME NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			task TEXT NOT NULL,
			favorite INTEGER NOT NULL DEFAULT 0,
			project_name TEXT NOT NULL,
			username TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

const entryColumns = "id, init_time, final_time, elapsed_seconds, task, favorite, project_name, username"

func scanEntry(row interface{ Scan(...any) error }) (models.Entry, error) {
	var e models.Entry
	var elapsedSec int64
	err := row.Scan(
		&e.ID, &e.InitTime, &e.FinalTime, &elapsedSec,
		&e.Task, &e.Favorite, &e.ProjectName, &e.Username,
	)
	if err != nil {
		return models.Entry{}, err
	}
	e.Elapsed = time.Duration(elapsedSec) * time.Second
	return e, nil
}

// CreateEntry inserts a completed work session. Elapsed is persisted as
// whole seconds.
func (db *DB) CreateEntry(initTime, finalTime time.Time, elapsed time.Duration, task string, favorite bool, projectName, username string) error {
	_, err := db.conn.Exec(
		"INSERT INTO entries (init_time, final_time, elapsed_seconds, task, favorite, project_name, username) VALUES (?, ?, ?, ?, ?, ?, ?)",
		initTime, finalTime, int64(elapsed/time.Second), task, favorite, projectName, username,
	)
	return err
}

// GetEntry retrieves a single entry by ID.
func (db *DB) GetEntry(id int64) (*models.Entry, error) {
	row := db.conn.QueryRow(
		"SELECT "+entryColumns+" FROM entries WHERE id = ?",
		id,
	)
	e, err := scanEntry(row)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EntriesByProject retrieves all entries for a user's project, most
// recent first.
func (db *DB) EntriesByProject(username, projectName string) ([]models.Entry, error) {
	return db.queryEntries(
		"SELECT "+entryColumns+" FROM entries WHERE username = ? AND project_name = ? ORDER BY init_time DESC",
		username, projectName,
	)
}

// EntriesByUser retrieves all entries for a user across projects, most
// recent first.
func (db *DB) EntriesByUser(username string) ([]models.Entry, error) {
	return db.queryEntries(
		"SELECT "+entryColumns+" FROM entries WHERE username = ? ORDER BY init_time DESC",
		username,
	)
}

func (db *DB) queryEntries(q string, args ...any) ([]models.Entry, error) {
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UpdateEntryTask replaces the task text of an existing entry.
func (db *DB) UpdateEntryTask(id int64, task string) error {
	_, err := db.conn.Exec("UPDATE entries SET task = ? WHERE id = ?", task, id)
	return err
}

// SetFavorite toggles the favorite flag of an existing entry.
func (db *DB) SetFavorite(id int64, favorite bool) error {
	_, err := db.conn.Exec("UPDATE entries SET favorite = ? WHERE id = ?", favorite, id)
	return err
}

// DeleteEntries removes the entries with the given IDs.
func (db *DB) DeleteEntries(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := db.conn.Exec(
		fmt.Sprintf("DELETE FROM entries WHERE id IN (%s)", placeholders),
		args...,
	)
	return err
}

// CreateProject creates a project for a user.
func (db *DB) CreateProject(name, username string) (*models.Project, error) {
	result, err := db.conn.Exec(
		"INSERT INTO projects (name, username) VALUES (?, ?)",
		name, username,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	row := db.conn.QueryRow(
		"SELECT id, name, username, created_at FROM projects WHERE id = ?",
		id,
	)
	var p models.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Username, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProject retrieves a user's project by name.
func (db *DB) GetProject(username, name string) (*models.Project, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, username, created_at FROM projects WHERE username = ? AND name = ?",
		username, name,
	)
	var p models.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Username, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectsByUser lists a user's projects, oldest first.
func (db *DB) ProjectsByUser(username string) ([]models.Project, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, username, created_at FROM projects WHERE username = ? ORDER BY created_at ASC",
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Username, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// DeleteProject removes a project and all of its entries.
func (db *DB) DeleteProject(username, name string) error {
	if _, err := db.conn.Exec(
		"DELETE FROM entries WHERE username = ? AND project_name = ?",
		username, name,
	); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		"DELETE FROM projects WHERE username = ? AND name = ?",
		username, name,
	)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreateUser creates a new user with the given username and password hash.
func (db *DB) CreateUser(username, passwordHash string) (*models.User, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(id)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?",
		id,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateSession creates a new session for a user.
func (db *DB) CreateSession(token string, userID int64, expiresAt time.Time) error {
	now := time.Now()
	_, err := db.conn.Exec(
		"INSERT INTO sessions (token, user_id, expires_at, last_activity) VALUES (?, ?, ?, ?)",
		token, userID, expiresAt, now,
	)
	return err
}

// SessionInfo holds session validation data.
type SessionInfo struct {
	User         *models.User
	LastActivity time.Time
	ExpiresAt    time.Time
}

// ValidateSession checks if a session token is valid and returns the associated user.
func (db *DB) ValidateSession(token string) (*models.User, error) {
	info, err := db.ValidateSessionWithInfo(token)
	if err != nil {
		return nil, err
	}
	return info.User, nil
}

// ValidateSessionWithInfo checks if a session token is valid and returns session details.
func (db *DB) ValidateSessionWithInfo(token string) (*SessionInfo, error) {
	row := db.conn.QueryRow(`
		SELECT u.id, u.username, u.password_hash, u.created_at, s.last_activity, s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = ? AND s.expires_at > CURRENT_TIMESTAMP
	`, token)

	var u models.User
	var lastActivity, expiresAt time.Time
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &lastActivity, &expiresAt); err != nil {
		return nil, err
	}
	return &SessionInfo{
		User:         &u,
		LastActivity: lastActivity,
		ExpiresAt:    expiresAt,
	}, nil
}

// RenewSession updates the last_activity and expires_at for a session.
func (db *DB) RenewSession(token string, newExpiresAt time.Time) error {
	now := time.Now()
	_, err := db.conn.Exec(
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		now, newExpiresAt, token,
	)
	return err
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// CleanExpiredSessions removes all expired sessions.
func (db *DB) CleanExpiredSessions() error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP")
	return err
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
