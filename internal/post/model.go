package post

import "time"

type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	ImageURL  *string   `gorm:"size:2048" json:"image_url"`
	CreatedAt time.Time `json:"-"`
}

// PostWithLikes is the read shape for listings: a post plus its aggregated
// like count. Likes are counted from like rows at query time, never stored.
type PostWithLikes struct {
	ID       uint64  `json:"id"`
	Body     string  `json:"body"`
	UserID   uint64  `json:"user_id"`
	ImageURL *string `json:"image_url"`
	Likes    int64   `json:"likes"`
}
