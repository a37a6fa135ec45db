package domain

import "time"

// Role enumerates workspace roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleDeveloper Role = "developer"
	RoleTester    Role = "tester"
)

// Known reports whether the role is recognized. Unknown roles are never an
// error; policy checks simply grant them nothing.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeveloper, RoleTester:
		return true
	}
	return false
}

// User is the domain model for workspace members.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ref returns a populated reference to the user.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Role: u.Role}
}
