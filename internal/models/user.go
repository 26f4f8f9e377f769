// Package models defines the records stored by SafeSpace and the read views
// derived from them.
package models

import "fmt"

// Role classifies an account. Values match the stored integers.
type Role int

const (
	RoleRegularUser   Role = 1
	RoleStaff         Role = 2
	RoleAdministrator Role = 3
)

func (r Role) Valid() bool {
	return r >= RoleRegularUser && r <= RoleAdministrator
}

func (r Role) String() string {
	switch r {
	case RoleRegularUser:
		return "user"
	case RoleStaff:
		return "staff"
	case RoleAdministrator:
		return "administrator"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole accepts the numeric menu value ("1".."3") or the role name.
func ParseRole(s string) (Role, error) {
	switch s {
	case "1", "user":
		return RoleRegularUser, nil
	case "2", "staff":
		return RoleStaff, nil
	case "3", "administrator", "admin":
		return RoleAdministrator, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// User is a persisted account. Secret holds the stored credential, never the
// value typed by the user.
type User struct {
	ID               int64
	Name             string
	Email            string
	Secret           string
	Age              *int
	Role             Role
	WellbeingAnswers RawAnswers
	Companion        *string
	CompanionAnswers RawAnswers
}

// RoleMember is a row of a role listing.
type RoleMember struct {
	ID   int64
	Name string
	Age  *int
}

// StaffContact is what a regular user sees of a counselor.
type StaffContact struct {
	Name  string
	Email string
}

// CounselorProfile is the subset of a regular user a counselor may read,
// answers still in stored form.
type CounselorProfile struct {
	Name             string
	WellbeingAnswers RawAnswers
	Companion        *string
	CompanionAnswers RawAnswers
}

// ProfileView is a counselor-facing profile with decoded answers and recent
// mood history (newest first).
type ProfileView struct {
	Name             string
	WellbeingAnswers []Answer
	Companion        *string
	CompanionAnswers []Answer
	RecentMoods      []MoodRecord
}
