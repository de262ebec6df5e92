package models

import "time"

type Task struct {
	ID          int64      `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
