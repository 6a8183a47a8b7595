package comment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	PostID    uint64    `gorm:"not null;index" json:"post_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"-"`
}

type CreateReq struct {
	Body   string `json:"body" validate:"required"`
	PostID uint64 `json:"post_id" validate:"required"`
}

type Repository interface {
	Create(c *Comment) error
	ListByPost(postID uint64) ([]Comment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(c *Comment) error {
	return r.db.Create(c).Error
}

func (r *repository) ListByPost(postID uint64) ([]Comment, error) {
	out := make([]Comment, 0)
	err := r.db.Where("post_id = ?", postID).Order("id ASC").Find(&out).Error
	return out, err
}
