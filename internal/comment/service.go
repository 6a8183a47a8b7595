package comment

// PostFinder answers whether the referenced post exists before a comment is
// accepted.
type PostFinder interface {
	Exists(id uint64) (bool, error)
}

type Service interface {
	Create(userID, postID uint64, body string) (*Comment, error)
	ListByPost(postID uint64) ([]Comment, error)
}

type service struct {
	repo  Repository
	posts PostFinder
}

func NewService(repo Repository, posts PostFinder) Service {
	return &service{repo: repo, posts: posts}
}

func (s *service) Create(userID, postID uint64, body string) (*Comment, error) {
	ok, err := s.posts.Exists(postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPostNotFound
	}
	c := &Comment{Body: body, PostID: postID, UserID: userID}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListByPost(postID uint64) ([]Comment, error) {
	return s.repo.ListByPost(postID)
}
