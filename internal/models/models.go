package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleDealer   = "dealer"
)

// Roles lists every role in hierarchy order: dealer leads roll up to an
// employee, employee leads to a manager, and admin sees everything.
var Roles = []string{RoleAdmin, RoleManager, RoleEmployee, RoleDealer}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	ManagerID    string    `bson:"managerId,omitempty" json:"managerId,omitempty"`
	EmployeeID   string    `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserRef is the public projection served to the filter dropdowns.
type UserRef struct {
	ID       string `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Role     string `bson:"role" json:"role"`
}
