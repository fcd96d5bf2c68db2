package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "HR"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleEmployee
}

type User struct {
	ID          string
	Name        string
	Email       string
	Photo       *string
	Phone       string
	DOB         time.Time
	Role        Role
	Department  string
	Grade       string
	Designation string

	// Manager is a lookup key (email), never an owning link. Nil means
	// no manager assigned.
	Manager *string

	Salary      decimal.Decimal
	JoiningDate time.Time
	Address     string

	PasswordHash string

	// Active is the soft-delete flag. The only allowed transition is
	// active -> inactive; rows are never hard-deleted.
	Active bool

	// GradeUpdateRecent is the date of the last promotion/demotion,
	// used for the six-month cooldown.
	GradeUpdateRecent *time.Time

	CreatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

// HasManager reports whether a manager is assigned.
func (u *User) HasManager() bool {
	return u.Manager != nil && *u.Manager != ""
}

// Identity is the authenticated caller context handed to services.
type Identity struct {
	Email   string
	Role    Role
	Manager *string
}

func (u *User) Identity() Identity {
	return Identity{Email: u.Email, Role: u.Role, Manager: u.Manager}
}
