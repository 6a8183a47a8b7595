package post

import (
	"context"
	"fmt"
	"log"

	"store-service/internal/comment"
)

// Generator is the slice of the image-generation client the service needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Mailer sends the outcome of an augmentation to the post's owner.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type CommentLister interface {
	ListByPost(postID uint64) ([]comment.Comment, error)
}

type Detail struct {
	Post     PostWithLikes     `json:"post"`
	Comments []comment.Comment `json:"comments"`
}

type Service interface {
	Create(userID uint64, body string) (*Post, error)
	List(sort Sorting) ([]PostWithLikes, error)
	GetWithComments(id uint64) (*Detail, error)
	Exists(id uint64) (bool, error)
	Augment(ctx context.Context, email string, postID uint64, postURL, prompt string)
}

type service struct {
	repo      Repository
	comments  CommentLister
	generator Generator
	mailer    Mailer
}

func NewService(repo Repository, comments CommentLister, generator Generator, mailer Mailer) Service {
	return &service{repo: repo, comments: comments, generator: generator, mailer: mailer}
}

func (s *service) Create(userID uint64, body string) (*Post, error) {
	p := &Post{UserID: userID, Body: body}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) List(sort Sorting) ([]PostWithLikes, error) {
	return s.repo.ListWithLikes(sort)
}

func (s *service) GetWithComments(id uint64) (*Detail, error) {
	p, err := s.repo.GetWithLikes(id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(id)
	if err != nil {
		return nil, err
	}
	return &Detail{Post: *p, Comments: comments}, nil
}

func (s *service) Exists(id uint64) (bool, error) {
	return s.repo.Exists(id)
}

// Augment runs entirely after the create-post response has been written. It
// calls the generation API, stores the resulting URL on the post, and reports
// the outcome to the owner by email. Failures never reach an HTTP caller;
// the failure email is the only observable side effect.
func (s *service) Augment(ctx context.Context, email string, postID uint64, postURL, prompt string) {
	imageURL, err := s.generator.Generate(ctx, prompt)
	if err == nil {
		err = s.repo.SetImageURL(postID, imageURL)
	}
	if err != nil {
		log.Printf("image augmentation for post %d failed: %v", postID, err)
		if mailErr := s.mailer.Send(ctx, email, "Error generating image",
			fmt.Sprintf("Hi %s! Unfortunately there was an error generating an image for your post.", email),
		); mailErr != nil {
			log.Printf("failure notification to %s failed: %v", email, mailErr)
		}
		return
	}
	if err := s.mailer.Send(ctx, email, "Image generation completed",
		fmt.Sprintf("Hi %s! Your image has been generated and added to your post."+
			" Please click on the following link to view it: %s", email, postURL),
	); err != nil {
		log.Printf("success notification to %s failed: %v", email, err)
	}
}
