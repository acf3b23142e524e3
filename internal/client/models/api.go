// Package models defines the JSON shapes the CLI exchanges with the blog API.
package models

import "time"

type User struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Age      *int    `json:"age,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type Author struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Categories []string  `json:"categories"`
	Author     Author    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type SignupRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewPost struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"categories"`
}

// ProfileUpdate carries only the fields being changed.
type ProfileUpdate struct {
	FullName *string
	Age      *int
	Bio      *string
	// ImagePath, when set, is a local file uploaded as the profile image.
	ImagePath string
}

// CreatedPost is the create response; author is the bare author id there.
type CreatedPost struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Categories []string  `json:"categories"`
	AuthorID   string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
}
