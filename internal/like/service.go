package like

type PostFinder interface {
	Exists(id uint64) (bool, error)
}

type Service interface {
	Create(userID, postID uint64) (*Like, error)
}

type service struct {
	repo  Repository
	posts PostFinder
}

func NewService(repo Repository, posts PostFinder) Service {
	return &service{repo: repo, posts: posts}
}

func (s *service) Create(userID, postID uint64) (*Like, error) {
	ok, err := s.posts.Exists(postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPostNotFound
	}
	l := &Like{PostID: postID, UserID: userID}
	if err := s.repo.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}
