package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"plusultra/internal/adapters/http/middleware"
	"plusultra/internal/adapters/http/perf"
	"plusultra/internal/adapters/pagesession"
	"plusultra/internal/domain/workout"
)

//go:embed templates/*.html static/* copy/*.md
var assets embed.FS

// DefaultRateLimitPerSecond is used when Options.RateLimitPerSecond is not positive.
const DefaultRateLimitPerSecond = 10

// Options configures a Server.
type Options struct {
	Sessions *pagesession.Store
	// Limiter is the per-IP rate limiter; one is created when nil.
	Limiter            *middleware.RateLimiter
	RateLimitPerSecond int
	CSRFKey            []byte
	SecureCookies      bool
	TrustedOrigins     []string
	SlowRequestMs      int
	// Collector receives request timings and page events; one is created when nil.
	Collector *perf.Collector
	// FreeGenerations is the number of plans per creativity page view; negative uses the default.
	FreeGenerations int
	// Now supplies the current local time; defaults to time.Now.
	Now func() time.Time
	// IntN picks workout entries; defaults to math/rand/v2.
	IntN func(n int) int
}

// Server serves the studio pages and JSON API.
type Server struct {
	opts      Options
	sessions  *pagesession.Store
	limiter   *middleware.RateLimiter
	collector *perf.Collector
	templates map[string]*template.Template
	intros    map[string]template.HTML
	router    chi.Router
}

var mdRenderer = goldmark.New()

// NewServer parses the embedded templates and wires the routes.
// PRE: opts.CSRFKey is 32 bytes
// POST: returns an error if a template or page copy fails to load
func NewServer(opts Options) (*Server, error) {
	if opts.Sessions == nil {
		opts.Sessions = pagesession.NewStore(pagesession.DefaultTTL, pagesession.DefaultMaxSessions)
	}
	if opts.RateLimitPerSecond <= 0 {
		opts.RateLimitPerSecond = DefaultRateLimitPerSecond
	}
	if opts.Limiter == nil {
		opts.Limiter = middleware.NewRateLimiter(opts.RateLimitPerSecond, time.Second)
	}
	if opts.Collector == nil {
		opts.Collector = perf.NewCollector(perf.DefaultCapacity)
	}
	if opts.FreeGenerations < 0 {
		opts.FreeGenerations = workout.DefaultFreeGenerations
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		opts:      opts,
		sessions:  opts.Sessions,
		limiter:   opts.Limiter,
		collector: opts.Collector,
		templates: make(map[string]*template.Template),
		intros:    make(map[string]template.HTML),
	}
	for _, p := range pages {
		tmpl, err := template.ParseFS(assets, "templates/layout.html", "templates/"+p.name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", p.name, err)
		}
		s.templates[p.name] = tmpl

		intro, err := renderMarkdownFile("copy/" + p.name + ".md")
		if err != nil {
			return nil, fmt.Errorf("render %s copy: %w", p.name, err)
		}
		s.intros[p.name] = intro
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	static, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/healthz", s.handleHealth)

	about := pages[pageAbout]
	r.Get("/", s.handlePageGet(about))
	for _, p := range pages {
		r.Get("/"+p.name, s.handlePageGet(p))
		r.Post("/"+p.name, s.handlePagePost(p))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/roster", s.handleAPIRoster)
		r.Post("/progress", s.handleAPIProgress)
		r.Post("/registrations/validate", s.handleAPIValidateRegistration)
		r.Get("/stats", s.handleAPIStats)
	})
	return r
}

// Router returns the routes without middleware.
func (s *Server) Router() http.Handler {
	return s.router
}

// Handler returns the routes wrapped in the middleware stack.
// Order: Timing -> RateLimit -> CSRF -> SecurityHeaders -> router
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.router,
		middleware.SecurityHeaders,
		middleware.CSRF(s.opts.CSRFKey, s.opts.SecureCookies, s.opts.TrustedOrigins),
		middleware.RateLimit(s.limiter),
		middleware.Timing(s.opts.SlowRequestMs, s.collector),
	)
}

// Sessions returns the page session store.
func (s *Server) Sessions() *pagesession.Store {
	return s.sessions
}

// Limiter returns the rate limiter, so callers can run its sweeper.
func (s *Server) Limiter() *middleware.RateLimiter {
	return s.limiter
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func renderMarkdownFile(name string) (template.HTML, error) {
	src, err := assets.ReadFile(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
