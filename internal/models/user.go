package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin           UserRole = "admin"
	RoleCoordinator     UserRole = "coordinator"
	RoleFieldOfficer    UserRole = "field_officer"
	RoleAccessor        UserRole = "accessor"
	RoleSeniorValuer    UserRole = "senior_valuer"
	RoleMDGM            UserRole = "md_gm"
	RoleHRHead          UserRole = "hr_head"
	RoleGeneralEmployee UserRole = "general_employee"
	RoleClient          UserRole = "client"
	RoleAgent           UserRole = "agent"
	RoleUnassigned      UserRole = "unassigned"
)

// RoleSalaries maps each role to its default monthly salary.
// A user's CustomSalary, if set, takes precedence.
var RoleSalaries = map[UserRole]float64{
	RoleAdmin:           300000,
	RoleCoordinator:     150000,
	RoleFieldOfficer:    130000,
	RoleAccessor:        110000,
	RoleSeniorValuer:    120000,
	RoleMDGM:            100000,
	RoleHRHead:          0, // HR head does not receive payment slips
	RoleGeneralEmployee: 50000,
	RoleAgent:           60000,
	RoleClient:          0,
	RoleUnassigned:      0,
}

type User struct {
	gorm.Model
	Email          string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName      string   `gorm:"size:100" json:"first_name"`
	LastName       string   `gorm:"size:100" json:"last_name"`
	PasswordHash   string   `gorm:"not null" json:"-"`
	Role           UserRole `gorm:"type:varchar(30);not null" json:"role"`
	EmployeeNumber string   `gorm:"size:50" json:"employee_number"`
	Phone          string   `gorm:"size:20" json:"phone"`
	// false only for auto-created accounts until the first password change
	PasswordChanged bool     `gorm:"default:true" json:"password_changed"`
	CustomSalary    *float64 `json:"custom_salary,omitempty"`
}

func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

func (u *User) Salary() float64 {
	if u.CustomSalary != nil {
		return *u.CustomSalary
	}
	return RoleSalaries[u.Role]
}

func ValidRole(r UserRole) bool {
	_, ok := RoleSalaries[r]
	return ok
}
