package domain

// NextID returns one more than the largest id, or 1 for an empty collection.
// It is based on the maximum rather than the count, so after deletions it never
// collides with an id that is still present. Callers combine it with their
// high-water mark so an id freed by deleting the newest entity stays retired.
func NextID(ids []int) int {
	highest := 0
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

// claimID returns the id for a new entity and advances the high-water mark past it.
func claimID(next *int, ids []int) int {
	id := max(*next, NextID(ids))
	*next = id + 1
	return id
}

func listIDs(lists []List) []int {
	ids := make([]int, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}
	return ids
}

func todoIDs(todos []Todo) []int {
	ids := make([]int, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	return ids
}
