// Package views renders the server side HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/aretw0/todolists/pkg/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Page names.
const (
	PageLists    = "lists"
	PageNewList  = "new_list"
	PageList     = "list"
	PageEditList = "edit_list"
)

var titles = map[string]string{
	PageLists:    "Lists",
	PageNewList:  "New List",
	PageList:     "List",
	PageEditList: "Edit List",
}

// FlashSource is drained once per rendered page.
type FlashSource interface {
	PopFlash() *domain.Flash
}

// ListSummary is the per-list data shown on the index and detail pages.
type ListSummary struct {
	ID        int
	Name      string
	Complete  bool
	Remaining int
	Total     int
}

// ListsData feeds the index page.
type ListsData struct {
	Lists []ListSummary
}

// ListData feeds the list detail page. TodoName echoes rejected input.
type ListData struct {
	List     ListSummary
	Todos    []domain.Todo
	TodoName string
}

// ListFormData feeds the new and edit forms. ListName echoes the input.
type ListFormData struct {
	List     ListSummary
	ListName string
}

// Summarize computes the display fields of a list.
func Summarize(l domain.List) ListSummary {
	return ListSummary{
		ID:        l.ID,
		Name:      l.Name,
		Complete:  l.Complete(),
		Remaining: l.Remaining(),
		Total:     l.Total(),
	}
}

// Index builds the index page data with complete lists last.
func Index(lists []domain.List) ListsData {
	sorted := domain.SortLists(lists)
	data := ListsData{Lists: make([]ListSummary, len(sorted))}
	for i, l := range sorted {
		data.Lists[i] = Summarize(l)
	}
	return data
}

// Detail builds the list page data with completed todos last.
func Detail(l domain.List, todoName string) ListData {
	return ListData{
		List:     Summarize(l),
		Todos:    domain.SortTodos(l.Todos),
		TodoName: todoName,
	}
}

type layoutData struct {
	Title string
	Flash *domain.Flash
	Data  any
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	layout, err := template.ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(titles))}
	for name := range titles {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the page to w, consuming the pending flash message.
func (r *Renderer) Render(w io.Writer, page string, flash FlashSource, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	ld := layoutData{Title: titles[page], Data: data}
	if flash != nil {
		ld.Flash = flash.PopFlash()
	}
	return t.ExecuteTemplate(w, "layout", ld)
}

// RenderBytes renders into memory so a template failure never leaves a half written response.
func (r *Renderer) RenderBytes(page string, flash FlashSource, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, page, flash, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Static serves the bundled CSS and JS under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
