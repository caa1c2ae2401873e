// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role represents the marketplace role a user can hold.
type Role string

const (
	// RoleFarmer indicates a farmer who lists crops for sale.
	RoleFarmer Role = "farmer"
	// RoleBuyer indicates a buyer who browses and purchases crops.
	RoleBuyer Role = "buyer"
	// RoleTransporter indicates a transporter who moves goods between parties.
	RoleTransporter Role = "transporter"
	// RoleNone indicates the user has not chosen a role yet.
	RoleNone Role = ""
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid assignable value.
func (r Role) IsValid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleTransporter:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}

// UserRole is the persisted assignment of a role to a user.
// A user has at most one of these; its absence means the role is undetermined.
type UserRole struct {
	ID        uuid.UUID // The unique ID for this assignment record.
	UserID    uuid.UUID // Links the assignment to the User it belongs to.
	Role      Role      // The assigned marketplace role.
	CreatedAt time.Time // Timestamp of when the role was chosen.
}
