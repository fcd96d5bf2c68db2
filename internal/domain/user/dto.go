package user

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnboardUserRequest is the registration payload after transport-level
// decoding. Dates stay strings here; the service parses them strictly.
type OnboardUserRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Photo       *string         `json:"photo,omitempty"`
	Phone       string          `json:"phone"`
	DOB         string          `json:"dob"`
	Role        Role            `json:"role"`
	Department  string          `json:"department"`
	Grade       string          `json:"grade"`
	Designation string          `json:"designation"`
	Salary      decimal.Decimal `json:"salary"`
	JoiningDate string          `json:"joining_date"`
	Address     string          `json:"address"`
	Password    string          `json:"password"`
}

// UpdateUserRequest carries the admin-editable fields. Nil means keep.
type UpdateUserRequest struct {
	ID      string           `json:"-"`
	Photo   *string          `json:"photo,omitempty"`
	Phone   *string          `json:"phone,omitempty"`
	Salary  *decimal.Decimal `json:"salary,omitempty"`
	Address *string          `json:"address,omitempty"`
}

// Filter narrows List queries; nil fields are ignored.
type Filter struct {
	Email       *string
	Department  *string
	Grade       *string
	Designation *string
	Manager     *string
}

// Response is the wire shape of a user; the password hash never
// leaves the service layer.
type Response struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Photo             *string         `json:"photo,omitempty"`
	Phone             string          `json:"phone"`
	DOB               time.Time       `json:"dob"`
	Role              Role            `json:"role"`
	Department        string          `json:"department"`
	Grade             string          `json:"grade"`
	Designation       string          `json:"designation"`
	Manager           *string         `json:"manager,omitempty"`
	Salary            decimal.Decimal `json:"salary"`
	JoiningDate       time.Time       `json:"joining_date"`
	Address           string          `json:"address"`
	Active            bool            `json:"active"`
	GradeUpdateRecent *time.Time      `json:"grade_update_recent,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToResponse strips the credential fields from a user.
func ToResponse(u User) Response {
	return Response{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Photo:             u.Photo,
		Phone:             u.Phone,
		DOB:               u.DOB,
		Role:              u.Role,
		Department:        u.Department,
		Grade:             u.Grade,
		Designation:       u.Designation,
		Manager:           u.Manager,
		Salary:            u.Salary,
		JoiningDate:       u.JoiningDate,
		Address:           u.Address,
		Active:            u.Active,
		GradeUpdateRecent: u.GradeUpdateRecent,
		CreatedAt:         u.CreatedAt,
	}
}

// ToResponses maps a slice of users.
func ToResponses(users []User) []Response {
	out := make([]Response, 0, len(users))
	for _, u := range users {
		out = append(out, ToResponse(u))
	}
	return out
}

// GradeChange is the change-set computed by the promotion engine. The
// caller applies and persists it.
type GradeChange struct {
	Email          string      `json:"email"`
	NewGrade       string      `json:"new_grade"`
	NewDesignation string      `json:"new_designation"`
	NewManager     *string     `json:"new_manager,omitempty"`
	Action         GradeAction `json:"action"`
}

type GradeAction string

const (
	GradeActionPromotion GradeAction = "promotion"
	GradeActionDemotion  GradeAction = "demotion"
)

func (a GradeAction) Valid() bool {
	return a == GradeActionPromotion || a == GradeActionDemotion
}

// ApplyGradeChangeRequest is the persistence payload for a validated
// grade change.
type ApplyGradeChangeRequest struct {
	Email       string
	Grade       string
	Designation string
	Manager     *string
	ChangedAt   time.Time
}
