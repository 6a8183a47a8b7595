package user

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(u *User) error
	FindByEmail(email string) (*User, error)
	Confirm(email string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Confirm(email string) error {
	return r.db.Model(&User{}).Where("email = ?", email).
		Update("confirmed", true).Error
}
