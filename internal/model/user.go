package model

import "time"

// User represents an application account as stored in the `users` table.
// Identity is immutable once created; only the password hash and the
// last-active timestamp change after registration. The password hash is
// never serialized.
//
// Fields:
//  ID           – opaque UUID assigned at registration.
//  Email        – unique email address (stored exactly as submitted).
//  PasswordHash – bcrypt hash of the password.
//  CreatedAt    – timestamp of registration.
//  LastActiveAt – last authenticated activity, nil until first seen.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}
