package model

import "time"

// User represents an application account as stored in the `users`
// table. The password hash never leaves the repository layer in API
// responses; handlers build separate response shapes.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name supplied at registration.
//  Email        – unique, lowercased email address.
//  PasswordHash – bcrypt hashed password.
//  IsAdmin      – whether the account may call admin endpoints.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
