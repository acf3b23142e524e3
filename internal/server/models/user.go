// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Age          *int      `json:"age,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Image        *string   `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the subset of a user exposed next to a token or as a
// post author.
type PublicUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// ProfilePatch lists the profile fields to change. Nil fields are left as
// they are.
type ProfilePatch struct {
	FullName *string
	Age      *int
	Bio      *string
	Image    *string
}
