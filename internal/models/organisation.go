package models

import "time"

type Organisation struct {
	ID        int64     `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Managers []OrganisationManager `gorm:"foreignKey:OrganisationID" json:"managers,omitempty"`
}

// OrganisationManager marks a user as a manager of an organisation.
type OrganisationManager struct {
	OrganisationID int64 `gorm:"primarykey" json:"organisation_id"`
	UserID         int64 `gorm:"primarykey" json:"user_id"`

	// Relations
	Organisation Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
