package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/todolists/internal/views"
	"github.com/aretw0/todolists/pkg/domain"
)

// Success messages.
const (
	msgListCreated   = "The list has been added successfully."
	msgListUpdated   = "The list has been updated."
	msgListDeleted   = "The list has been deleted."
	msgTodoAdded     = "The todo was added."
	msgTodoDeleted   = "The todo has been deleted."
	msgTodoUpdated   = "The todo has been updated."
	msgTodosComplete = "All todos have been completed."
)

const listsPath = "/lists"

func listPath(id int) string {
	return fmt.Sprintf("/lists/%d", id)
}

func (s *Server) flash(st *domain.State, kind domain.FlashKind, message string) {
	st.SetFlash(kind, message)
	s.metrics.Flash(string(kind))
}

func (s *Server) lookupList(r *http.Request, st *domain.State) (*domain.List, bool) {
	id, ok := pathID(r, "list_id")
	if !ok {
		return nil, false
	}
	l, err := st.FindList(id)
	return l, err == nil
}

func (s *Server) lookupTodo(r *http.Request, l *domain.List) (*domain.Todo, bool) {
	id, ok := pathID(r, "todo_id")
	if !ok {
		return nil, false
	}
	t, err := l.FindTodo(id)
	return t, err == nil
}

// notFound is the single recovery path for stale or malformed ids.
func (s *Server) notFound(st *domain.State, message string) (reply, error) {
	s.flash(st, domain.FlashError, message)
	return redirectTo(listsPath), nil
}

// deleted picks the response shape for a delete: 204 for the client script,
// redirect with a success flash for a plain form post.
// keepFlash also queues the flash for async callers that navigate afterwards.
func (s *Server) deleted(r *http.Request, st *domain.State, location, message string, keepFlash bool) reply {
	async := isAsync(r)
	if !async || keepFlash {
		s.flash(st, domain.FlashSuccess, message)
	}
	if async {
		return noContent()
	}
	return redirectTo(location)
}

func (s *Server) listIndex(r *http.Request, st *domain.State) (reply, error) {
	return render(http.StatusOK, views.PageLists, views.Index(st.Lists)), nil
}

func (s *Server) newList(r *http.Request, st *domain.State) (reply, error) {
	return render(http.StatusOK, views.PageNewList, views.ListFormData{}), nil
}

func (s *Server) createList(r *http.Request, st *domain.State) (reply, error) {
	var form listForm
	if err := decodeForm(r, &form); err != nil {
		return reply{}, fmt.Errorf("%w: %v", errBadForm, err)
	}

	name := strings.TrimSpace(form.Name)
	if err := domain.ValidateListName(name, st.Lists); err != nil {
		s.flash(st, domain.FlashError, domain.Message(err))
		return render(http.StatusUnprocessableEntity, views.PageNewList, views.ListFormData{ListName: form.Name}), nil
	}

	st.AddList(name)
	s.metrics.Mutation("list", "create")
	s.flash(st, domain.FlashSuccess, msgListCreated)
	return redirectTo(listsPath), nil
}

func (s *Server) showList(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	return render(http.StatusOK, views.PageList, views.Detail(*l, "")), nil
}

func (s *Server) editList(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	data := views.ListFormData{List: views.Summarize(*l), ListName: l.Name}
	return render(http.StatusOK, views.PageEditList, data), nil
}

func (s *Server) updateList(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	var form listForm
	if err := decodeForm(r, &form); err != nil {
		return reply{}, fmt.Errorf("%w: %v", errBadForm, err)
	}

	// Keeping the current name is allowed, so the list itself is left out of the uniqueness check.
	name := strings.TrimSpace(form.Name)
	if err := domain.ValidateListName(name, st.OtherLists(l.ID)); err != nil {
		s.flash(st, domain.FlashError, domain.Message(err))
		data := views.ListFormData{List: views.Summarize(*l), ListName: form.Name}
		return render(http.StatusUnprocessableEntity, views.PageEditList, data), nil
	}

	l.Name = name
	s.metrics.Mutation("list", "update")
	s.flash(st, domain.FlashSuccess, msgListUpdated)
	return redirectTo(listPath(l.ID)), nil
}

func (s *Server) deleteList(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	if err := st.DeleteList(l.ID); err != nil {
		return reply{}, err
	}
	s.metrics.Mutation("list", "delete")
	return s.deleted(r, st, listsPath, msgListDeleted, true), nil
}

func (s *Server) completeAll(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	l.CompleteAll()
	s.metrics.Mutation("list", "complete")
	s.flash(st, domain.FlashSuccess, msgTodosComplete)
	return redirectTo(listPath(l.ID)), nil
}

func (s *Server) addTodo(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	var form todoForm
	if err := decodeForm(r, &form); err != nil {
		return reply{}, fmt.Errorf("%w: %v", errBadForm, err)
	}

	name := strings.TrimSpace(form.Name)
	if err := domain.ValidateTodoName(name); err != nil {
		s.flash(st, domain.FlashError, domain.Message(err))
		return render(http.StatusUnprocessableEntity, views.PageList, views.Detail(*l, form.Name)), nil
	}

	l.AddTodo(name)
	s.metrics.Mutation("todo", "create")
	s.flash(st, domain.FlashSuccess, msgTodoAdded)
	return redirectTo(listPath(l.ID)), nil
}

func (s *Server) toggleTodo(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	t, ok := s.lookupTodo(r, l)
	if !ok {
		return s.notFound(st, domain.MsgTodoNotFound)
	}
	var form toggleForm
	if err := decodeForm(r, &form); err != nil {
		return reply{}, fmt.Errorf("%w: %v", errBadForm, err)
	}

	t.Completed = form.Completed == "true"
	s.metrics.Mutation("todo", "toggle")
	s.flash(st, domain.FlashSuccess, msgTodoUpdated)
	return redirectTo(listPath(l.ID)), nil
}

func (s *Server) deleteTodo(r *http.Request, st *domain.State) (reply, error) {
	l, ok := s.lookupList(r, st)
	if !ok {
		return s.notFound(st, domain.MsgListNotFound)
	}
	t, ok := s.lookupTodo(r, l)
	if !ok {
		return s.notFound(st, domain.MsgTodoNotFound)
	}
	if err := l.DeleteTodo(t.ID); err != nil {
		return reply{}, err
	}
	s.metrics.Mutation("todo", "delete")
	return s.deleted(r, st, listPath(l.ID), msgTodoDeleted, false), nil
}
