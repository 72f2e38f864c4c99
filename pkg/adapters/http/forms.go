package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
)

type listForm struct {
	Name string `mapstructure:"list_name"`
}

type todoForm struct {
	Name string `mapstructure:"todo_name"`
}

type toggleForm struct {
	Completed string `mapstructure:"completed"`
}

// decodeForm flattens the posted form (first value per key) into out.
// Missing fields decode to their zero value.
func decodeForm(r *http.Request, out any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	flat := make(map[string]any, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	return mapstructure.Decode(flat, out)
}

// pathID parses a decimal id from the route. Anything else reports false.
func pathID(r *http.Request, key string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil {
		return 0, false
	}
	return id, true
}

// isAsync reports whether the request came from the client script rather than a plain form post.
func isAsync(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
