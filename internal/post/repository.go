package post

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("post not found")

type Repository interface {
	Create(p *Post) error
	ListWithLikes(sort Sorting) ([]PostWithLikes, error)
	GetWithLikes(id uint64) (*PostWithLikes, error)
	Exists(id uint64) (bool, error)
	SetImageURL(id uint64, url string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(p *Post) error {
	return r.db.Create(p).Error
}

func (r *repository) withLikes() *gorm.DB {
	return r.db.Table("posts").
		Select("posts.id, posts.body, posts.user_id, posts.image_url, count(likes.id) AS likes").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Group("posts.id")
}

func (r *repository) ListWithLikes(sort Sorting) ([]PostWithLikes, error) {
	q := r.withLikes()
	switch sort {
	case SortOld:
		q = q.Order("posts.id ASC")
	case SortMostLikes:
		// id DESC keeps ties deterministic
		q = q.Order("likes DESC, posts.id DESC")
	default:
		q = q.Order("posts.id DESC")
	}
	var out []PostWithLikes
	if err := q.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) GetWithLikes(id uint64) (*PostWithLikes, error) {
	var out PostWithLikes
	res := r.withLikes().Where("posts.id = ?", id).Scan(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &out, nil
}

func (r *repository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) SetImageURL(id uint64, url string) error {
	return r.db.Model(&Post{}).Where("id = ?", id).
		Update("image_url", url).Error
}
