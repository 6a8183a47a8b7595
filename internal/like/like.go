package like

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

// Like rows carry no uniqueness constraint on (post_id, user_id): one click is
// one row, and the aggregate count reflects every click.
type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index" json:"post_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"-"`
}

type CreateReq struct {
	PostID uint64 `json:"post_id" validate:"required"`
}

type Repository interface {
	Create(l *Like) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(l *Like) error {
	return r.db.Create(l).Error
}
