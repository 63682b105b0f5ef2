package entity

import "github.com/google/uuid"

type Todo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
}
