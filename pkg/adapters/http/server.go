package http

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/todolists/internal/logging"
	"github.com/aretw0/todolists/internal/metrics"
	"github.com/aretw0/todolists/internal/views"
	"github.com/aretw0/todolists/pkg/domain"
	"github.com/aretw0/todolists/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the todo lists web interface.
type Server struct {
	sessions *session.Manager
	views    *views.Renderer
	cookies  cookieCodec
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables request instrumentation and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithSessionSecret sets the HMAC key signing session cookies.
// Without it a random key is generated, so sessions do not survive a restart.
func WithSessionSecret(secret []byte) Option {
	return func(s *Server) {
		s.cookies.secret = secret
	}
}

// WithSecureCookies marks the session cookie Secure (HTTPS only).
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.cookies.secure = secure
	}
}

// WithCookieTTL sets the cookie Max-Age. Zero keeps a browser-session cookie.
func WithCookieTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.cookies.ttl = ttl
	}
}

// NewServer creates a Server backed by the session manager.
func NewServer(sessions *session.Manager, opts ...Option) (*Server, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}
	s := &Server{
		sessions: sessions,
		views:    renderer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.cookies.secret) == 0 {
		s.cookies.secret = make([]byte, 32)
		if _, err := rand.Read(s.cookies.secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}
	return s, nil
}

// NewHandler is a shortcut for NewServer followed by Handler.
func NewHandler(sessions *session.Manager, opts ...Option) (http.Handler, error) {
	s, err := NewServer(sessions, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/health", s.health)
	r.Handle("/static/*", views.Static())

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/lists", http.StatusSeeOther)
		})
		r.Get("/lists", s.handle(s.listIndex))
		r.Post("/lists", s.handle(s.createList))
		r.Get("/lists/new", s.handle(s.newList))
		r.Get("/lists/{list_id}", s.handle(s.showList))
		r.Get("/lists/{list_id}/edit", s.handle(s.editList))
		r.Post("/lists/{list_id}", s.handle(s.updateList))
		r.Post("/lists/{list_id}/delete", s.handle(s.deleteList))
		r.Post("/lists/{list_id}/complete", s.handle(s.completeAll))
		r.Post("/lists/{list_id}/todos", s.handle(s.addTodo))
		r.Post("/lists/{list_id}/todos/{todo_id}", s.handle(s.toggleTodo))
		r.Post("/lists/{list_id}/todos/{todo_id}/delete", s.handle(s.deleteTodo))
	})
	return r
}

// health answers liveness probes.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// errBadForm marks a request body that could not be parsed.
var errBadForm = errors.New("malformed form")

type replyKind int

const (
	replyRender replyKind = iota
	replyRedirect
	replyNoContent
)

// reply is the response shape chosen by an action.
type reply struct {
	kind     replyKind
	status   int
	page     string
	data     any
	location string
}

func render(status int, page string, data any) reply {
	return reply{kind: replyRender, status: status, page: page, data: data}
}

func redirectTo(location string) reply {
	return reply{kind: replyRedirect, location: location}
}

func noContent() reply {
	return reply{kind: replyNoContent}
}

// action is one route's transition over the session state.
type action func(r *http.Request, st *domain.State) (reply, error)

// handle runs the action and any page rendering inside the session lock,
// so the flash slot is drained and saved in the same read-modify-write.
func (s *Server) handle(fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := SessionID(r.Context())

		var (
			rep  reply
			body []byte
		)
		err := s.sessions.Update(r.Context(), sid, func(st *domain.State) error {
			var err error
			if rep, err = fn(r, st); err != nil {
				return err
			}
			if rep.kind == replyRender {
				body, err = s.views.RenderBytes(rep.page, st, rep.data)
			}
			return err
		})
		if errors.Is(err, errBadForm) {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			s.logger.Warn("Rejected request body", "path", r.URL.Path, "err", err)
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			s.logger.Error("Request failed", "path", r.URL.Path, "session_id", sid, "err", err)
			return
		}

		switch rep.kind {
		case replyRedirect:
			http.Redirect(w, r, rep.location, http.StatusSeeOther)
		case replyNoContent:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(rep.status)
			_, _ = w.Write(body)
		}
	}
}

// accessLog writes one structured line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
