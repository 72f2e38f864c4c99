package domain

import "testing"

func TestSortTodos_Stable(t *testing.T) {
	todos := []Todo{
		{ID: 1, Name: "Milk", Completed: true},
		{ID: 2, Name: "Eggs"},
		{ID: 3, Name: "Bread", Completed: true},
		{ID: 4, Name: "Butter"},
	}

	got := SortTodos(todos)

	wantIDs := []int{2, 4, 1, 3}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d (%+v)", i, got[i].ID, id, got)
		}
	}
	if todos[0].ID != 1 {
		t.Error("SortTodos mutated its input")
	}
}

func TestSortLists_CompleteLast(t *testing.T) {
	done := []Todo{{ID: 1, Completed: true}}
	lists := []List{
		{ID: 1, Name: "Done A", Todos: done},
		{ID: 2, Name: "Empty"},
		{ID: 3, Name: "Done B", Todos: done},
		{ID: 4, Name: "Open", Todos: []Todo{{ID: 1}}},
	}

	got := SortLists(lists)

	wantIDs := []int{2, 4, 1, 3}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d", i, got[i].ID, id)
		}
	}
	if lists[0].ID != 1 {
		t.Error("SortLists mutated its input")
	}
}
