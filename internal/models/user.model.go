package models

import (
	"slices"
	"time"

	"recruiter/internal/utils"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"

	// Permission bit the backend uses for administrative access.
	permissionAdmin = 2
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CompanyID int       `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RawUser struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Permissions []int  `json:"permissions"`
	CompanyID   int    `json:"companyId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func SerializeUser(raw RawUser) User {
	role := RoleUser
	if slices.Contains(raw.Permissions, permissionAdmin) {
		role = RoleAdmin
	}

	return User{
		ID:        raw.UID,
		Name:      raw.Name,
		Username:  raw.Username,
		Email:     raw.Email,
		Role:      role,
		CompanyID: raw.CompanyID,
		CreatedAt: utils.ParseDate(raw.CreatedAt),
		UpdatedAt: utils.ParseDate(raw.UpdatedAt),
	}
}

func SerializeUsers(raws []RawUser) []User {
	users := make([]User, 0, len(raws))
	for _, raw := range raws {
		users = append(users, SerializeUser(raw))
	}
	return users
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}
