package database

import (
	"gorm.io/gorm"
)

// Paginate applies offset/limit clauses to a GORM query.
// Zero or negative values disable pagination and return the full set.
func Paginate(page, perPage int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || perPage <= 0 {
			return db
		}
		offset := (page - 1) * perPage
		return db.Offset(offset).Limit(perPage)
	}
}
