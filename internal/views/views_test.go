package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/todolists/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DrainsFlash(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	state := domain.NewState()
	state.SetFlash(domain.FlashError, "Please enter a unique list name.")

	out, err := r.RenderBytes(PageNewList, state, ListFormData{ListName: "Groceries"})
	require.NoError(t, err)

	body := string(out)
	assert.Contains(t, body, `class="flash error"`)
	assert.Contains(t, body, "Please enter a unique list name.")
	assert.Contains(t, body, `value="Groceries"`)
	assert.Nil(t, state.Flash, "renderer must clear the flash slot")

	out, err = r.RenderBytes(PageNewList, state, ListFormData{})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "flash error")
}

func TestRender_EscapesNames(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	data := Index([]domain.List{{ID: 1, Name: "<script>alert(1)</script>"}})
	out, err := r.RenderBytes(PageLists, nil, data)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>alert(1)</script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.RenderBytes("nope", nil, nil)
	assert.Error(t, err)
}

func TestIndex_CompleteListsLast(t *testing.T) {
	lists := []domain.List{
		{ID: 1, Name: "Done", Todos: []domain.Todo{{ID: 1, Completed: true}}},
		{ID: 2, Name: "Open", Todos: []domain.Todo{{ID: 1}, {ID: 2, Completed: true}}},
	}

	data := Index(lists)

	require.Len(t, data.Lists, 2)
	assert.Equal(t, "Open", data.Lists[0].Name)
	assert.Equal(t, 1, data.Lists[0].Remaining)
	assert.Equal(t, 2, data.Lists[0].Total)
	assert.True(t, data.Lists[1].Complete)
}

func TestRender_ListDetailOrder(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	l := domain.List{ID: 1, Name: "Groceries", Todos: []domain.Todo{
		{ID: 1, Name: "Milk", Completed: true},
		{ID: 2, Name: "Eggs"},
	}}
	out, err := r.RenderBytes(PageList, nil, Detail(l, ""))
	require.NoError(t, err)

	body := string(out)
	assert.Less(t, strings.Index(body, "Eggs"), strings.Index(body, "Milk"))
	assert.Contains(t, body, `action="/lists/1/todos/2/delete"`)
}

func TestStatic(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "X-Requested-With")
}
