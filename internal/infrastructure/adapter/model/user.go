package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents the database model for users. Only the coin-relevant columns are mapped.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Role        string         `gorm:"type:varchar(20);not null"`
	ServerRoles pq.StringArray `gorm:"type:text[];not null"`
	Coins       int64          `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
