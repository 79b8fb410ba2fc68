package models

import (
	"time"

	"gorm.io/gorm"
)

// ShopReview is feedback about the shop itself, one star rating per entry.
type ShopReview struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Comment string `gorm:"type:text;not null" json:"comment"`
	Rating  int    `gorm:"not null;index" json:"rating"`
	User    *User  `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// ProductReview is a customer question or comment on a product. Answer and
// AnsweredAt are set only when an admin replies.
type ProductReview struct {
	gorm.Model
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	ProductID  uint       `gorm:"index;not null" json:"product_id"`
	Comment    string     `gorm:"type:text;not null" json:"comment"`
	Answer     *string    `gorm:"type:text" json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	User       *User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// Answered reports whether an admin reply exists.
func (r ProductReview) Answered() bool { return r.Answer != nil }
