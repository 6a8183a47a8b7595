package post

import "fmt"

type Sorting string

const (
	SortNew       Sorting = "new"
	SortOld       Sorting = "old"
	SortMostLikes Sorting = "most_likes"
)

// ParseSorting maps the ?sorting= query value to a sort order. An empty value
// defaults to newest-first.
func ParseSorting(s string) (Sorting, error) {
	switch Sorting(s) {
	case "":
		return SortNew, nil
	case SortNew, SortOld, SortMostLikes:
		return Sorting(s), nil
	default:
		return "", fmt.Errorf("invalid sorting %q", s)
	}
}
