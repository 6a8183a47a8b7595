package post

type CreatePostReq struct {
	Body string `json:"body" validate:"required"`
}
