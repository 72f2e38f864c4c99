package domain

import (
	"cmp"
	"slices"
)

// SortLists returns a copy of lists with complete lists moved last.
// The sort is stable and never touches the session's own ordering.
func SortLists(lists []List) []List {
	out := slices.Clone(lists)
	slices.SortStableFunc(out, func(a, b List) int {
		return cmp.Compare(rank(a.Complete()), rank(b.Complete()))
	})
	return out
}

// SortTodos returns a copy of todos with completed todos moved last.
func SortTodos(todos []Todo) []Todo {
	out := slices.Clone(todos)
	slices.SortStableFunc(out, func(a, b Todo) int {
		return cmp.Compare(rank(a.Completed), rank(b.Completed))
	})
	return out
}

func rank(done bool) int {
	if done {
		return 1
	}
	return 0
}
