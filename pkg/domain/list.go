package domain

import "slices"

// FindList resolves a list by id. The returned pointer aliases the state.
func (s *State) FindList(id int) (*List, error) {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return &s.Lists[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddList appends a new empty list. The name must already be validated.
// Ids of deleted lists are never handed out again.
func (s *State) AddList(name string) List {
	l := List{ID: claimID(&s.NextListID, listIDs(s.Lists)), Name: name, Todos: []Todo{}}
	s.Lists = append(s.Lists, l)
	return l
}

// DeleteList removes exactly one list and leaves the remaining ids untouched.
func (s *State) DeleteList(id int) error {
	i := slices.IndexFunc(s.Lists, func(l List) bool { return l.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	s.Lists = slices.Delete(s.Lists, i, i+1)
	return nil
}

// OtherLists returns every list except the one with the given id.
// Used to check a rename for uniqueness without tripping on the list's own name.
func (s *State) OtherLists(id int) []List {
	others := make([]List, 0, len(s.Lists))
	for _, l := range s.Lists {
		if l.ID != id {
			others = append(others, l)
		}
	}
	return others
}

// FindTodo resolves a todo by id within the list.
func (l *List) FindTodo(id int) (*Todo, error) {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			return &l.Todos[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddTodo appends a new incomplete todo. The name must already be validated.
// Ids of deleted todos are never handed out again.
func (l *List) AddTodo(name string) Todo {
	t := Todo{ID: claimID(&l.NextTodoID, todoIDs(l.Todos)), Name: name}
	l.Todos = append(l.Todos, t)
	return t
}

// DeleteTodo removes exactly one todo from the list.
func (l *List) DeleteTodo(id int) error {
	i := slices.IndexFunc(l.Todos, func(t Todo) bool { return t.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	l.Todos = slices.Delete(l.Todos, i, i+1)
	return nil
}

// CompleteAll marks every todo of the list as completed.
func (l *List) CompleteAll() {
	for i := range l.Todos {
		l.Todos[i].Completed = true
	}
}

// Remaining counts the incomplete todos.
func (l List) Remaining() int {
	n := 0
	for _, t := range l.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Total counts all todos.
func (l List) Total() int {
	return len(l.Todos)
}

// Complete reports whether the list has at least one todo and none left to do.
func (l List) Complete() bool {
	return l.Total() > 0 && l.Remaining() == 0
}
