package migrate

import (
	"store-service/internal/comment"
	"store-service/internal/like"
	"store-service/internal/post"
	"store-service/internal/shared/db"
	"store-service/internal/user"
)

func AutoMigrateAll(store *db.Store) error {
	return store.Base.AutoMigrate(
		&user.User{},
		&post.Post{},
		&comment.Comment{},
		&like.Like{},
	)
}
