package models

import "time"

// Entry represents one recorded work session.
type Entry struct {
	ID          int64         `json:"id"`
	InitTime    time.Time     `json:"init_time"`
	FinalTime   time.Time     `json:"final_time"`
	Elapsed     time.Duration `json:"elapsed"`
	Task        string        `json:"task"`
	Favorite    bool          `json:"favorite"`
	ProjectName string        `json:"project_name"`
	Username    string        `json:"username"`
}

// Project represents a named workspace owned by a user.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a user session.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
