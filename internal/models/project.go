package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID         `gorm:"type:uuid;primarykey" json:"id"`
	Name        string            `gorm:"type:varchar(255);not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Status      string            `gorm:"type:varchar(50);not null;default:'active'" json:"status"`
	Settings    datatypes.JSONMap `json:"settings"`
	OwnerID     int64             `gorm:"not null" json:"owner_id"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"deleted_at"`

	// Relations
	Roles []UserRole `gorm:"foreignKey:ProjectID" json:"roles,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
