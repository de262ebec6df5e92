package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the site-wide role assigned to a user.
//
//   - READ_ONLY = write access blocked (i.e. banned)
//   - MAPPER    = default for all
//   - ADMIN     = super admin with access to everything
type Role string

const (
	RoleReadOnly Role = "READ_ONLY"
	RoleMapper   Role = "MAPPER"
	RoleAdmin    Role = "ADMIN"
)

// Roles lists all site-wide roles in declaration order.
var Roles = []Role{RoleReadOnly, RoleMapper, RoleAdmin}

// Valid reports whether r is a known site-wide role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	// The ID is supplied by the client on registration (normally the OSM ID),
	// so the primary key is not auto-generated.
	ID              int64      `gorm:"primarykey;autoIncrement:false" json:"id"`
	Username        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Role            Role       `gorm:"type:varchar(20);not null;default:'MAPPER'" json:"role"`
	ProfileImg      *string    `gorm:"type:varchar(512)" json:"profile_img"`
	Name            *string    `gorm:"type:varchar(255)" json:"name"`
	City            *string    `gorm:"type:varchar(255)" json:"city"`
	Country         *string    `gorm:"type:varchar(255)" json:"country"`
	EmailAddress    *string    `gorm:"type:varchar(255)" json:"email_address"`
	IsEmailVerified bool       `gorm:"not null;default:false" json:"is_email_verified"`
	IsExpert        bool       `gorm:"not null;default:false" json:"is_expert"`
	APIKeyHash      string     `gorm:"type:varchar(255)" json:"-"`
	RegisteredAt    time.Time  `gorm:"autoCreateTime" json:"registered_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`

	// Derived, resolved by the user service rather than stored
	ProjectRoles map[uuid.UUID]ProjectRole `gorm:"-" json:"project_roles,omitempty"`
	OrgsManaged  []int64                   `gorm:"-" json:"orgs_managed,omitempty"`
}
