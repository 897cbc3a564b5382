package domain

import "time"

// UserType decides which credentials a user logs in with.
type UserType string

const (
	UserTypeIndividual UserType = "Individual"
	UserTypeCorporate  UserType = "Corporate"
	UserTypeAdmin      UserType = "Admin"
	UserTypeSuperAdmin UserType = "SuperAdmin"
)

// Valid reports whether t is one of the four known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeIndividual, UserTypeCorporate, UserTypeAdmin, UserTypeSuperAdmin:
		return true
	}
	return false
}

// CanSelfRegister reports whether accounts of this type may sign up
// through the public endpoint.
func (t UserType) CanSelfRegister() bool {
	return t == UserTypeIndividual || t == UserTypeCorporate
}

// LoginByPhone reports whether the phone number is the primary login key.
// Every other type logs in by email.
func (t UserType) LoginByPhone() bool {
	return t == UserTypeIndividual
}

// DefaultRole is the role assigned to a self-registered account.
func (t UserType) DefaultRole() Role {
	switch t {
	case UserTypeCorporate:
		return RoleCorporate
	case UserTypeAdmin:
		return RoleAdmin
	case UserTypeSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleCustomer
	}
}

type User struct {
	ID            string
	Name          string
	Email         string // lowercased; empty when not supplied
	Phone         string // empty when not supplied
	PasswordHash  string // argon2 encoded
	UserType      UserType
	Role          Role
	IsAdmin       string // admin marker, see HasAdminMarker
	EmailVerified bool
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Principal strips the password hash. It is the only user shape that ever
// leaves the service.
func (u User) Principal() Principal {
	return Principal{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		UserType:      u.UserType,
		Role:          u.Role,
		IsAdmin:       u.IsAdmin,
		EmailVerified: u.EmailVerified,
		VerifiedAt:    u.VerifiedAt,
		CreatedAt:     u.CreatedAt,
	}
}
