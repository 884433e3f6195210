package profile

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("profile not found")
	ErrUnknownRole = errors.New("profile has no recognized role")
	ErrForbidden   = errors.New("role not allowed")
)

type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleInvestor, RoleAdmin:
		return true
	}
	return false
}

// Table: profiles. The id is the identity issued by the auth platform; the
// role is fixed at signup.
type Profile struct {
	ID        string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	FullName  string    `gorm:"column:full_name;not null" json:"full_name"`
	Email     string    `gorm:"column:email;not null" json:"email"`
	Phone     *string   `gorm:"column:phone" json:"phone,omitempty"`
	Role      Role      `gorm:"column:role;type:enum('farmer','investor','admin');default:'farmer'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Profile) TableName() string { return "profiles" }
