package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/csrf"

	"plusultra/internal/adapters/pagesession"
	"plusultra/internal/application/orchestrators"
	"plusultra/internal/application/ui"
	"plusultra/internal/domain/registration"
	"plusultra/internal/domain/workout"
)

// Page names double as route paths and template names.
const (
	pageAbout        = "about"
	pageCreativity   = "creativity"
	pageRegistration = "registration"
)

// pageSessionField is the hidden form field carrying the page session id.
const pageSessionField = "pageSession"

// page describes one of the studio pages.
type page struct {
	name  string
	title string
	// inputs are the form fields copied into the session state before an event.
	inputs []string
	// setup binds the page's events and seeds its initial state.
	setup func(s *Server, sess *pagesession.Session) error
}

var pages = map[string]page{
	pageAbout: {
		name:  pageAbout,
		title: "About",
		setup: func(_ *Server, sess *pagesession.Session) error {
			orchestrators.BindAboutPage(sess.Events)
			return nil
		},
	},
	pageCreativity: {
		name:   pageCreativity,
		title:  "Creativity",
		inputs: []string{orchestrators.CompletedID},
		setup: func(s *Server, sess *pagesession.Session) error {
			gen := workout.NewGenerator(s.opts.FreeGenerations, s.opts.IntN)
			orchestrators.BindCreativityPage(sess.Events, gen)
			return orchestrators.InitCreativityPage(sess.Events, sess.State)
		},
	},
	pageRegistration: {
		name:   pageRegistration,
		title:  "Register",
		inputs: registrationInputs(),
		setup: func(s *Server, sess *pagesession.Session) error {
			orchestrators.BindRegistrationPage(sess.Events, s.opts.Now)
			return nil
		},
	},
}

func registrationInputs() []string {
	ids := make([]string, len(registration.AllFields))
	for i, f := range registration.AllFields {
		ids[i] = string(f)
	}
	return ids
}

// pageView is the template data for a page.
type pageView struct {
	Title            string
	Page             string
	SessionID        string
	Year             int
	Intro            template.HTML
	CSRFField        template.HTML
	MembershipTypes  []registration.Option
	ExperienceLevels []registration.Option

	state *ui.State
}

// Text returns the displayed text of an element.
func (v pageView) Text(id string) string { return v.state.Text(id) }

// Field returns the current value of an input.
func (v pageView) Field(id string) string { return v.state.Field(id) }

// Width returns the percentage width of an indicator.
func (v pageView) Width(id string) int { return v.state.Width(id) }

// Visible reports whether an element is shown.
func (v pageView) Visible(id string) bool { return v.state.IsVisible(id) }

// handlePageGet starts a fresh page session and renders the page.
func (s *Server) handlePageGet(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Create(p.name)

		var buf bytes.Buffer
		err := sess.Do(func(sess *pagesession.Session) error {
			if err := p.setup(s, sess); err != nil {
				return fmt.Errorf("set up %s page: %w", p.name, err)
			}
			return s.renderPage(&buf, r, p, sess)
		})
		if err != nil {
			s.sessions.Delete(sess.ID)
			internalError(w, err)
			return
		}
		writeHTML(w, &buf)
	}
}

// handlePagePost applies one event to the page session named in the form.
func (s *Server) handlePagePost(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		sess, err := s.sessions.Get(r.PostFormValue(pageSessionField), p.name)
		if errors.Is(err, pagesession.ErrNotFound) {
			http.Redirect(w, r, "/"+p.name, http.StatusSeeOther)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}

		event := r.PostFormValue("event")
		var buf bytes.Buffer
		err = sess.Do(func(sess *pagesession.Session) error {
			// Unknown events leave the session untouched.
			if known := sess.Events.Events(); !slices.Contains(known, event) {
				slog.Warn("unknown_page_event", "page", p.name, "event", event, "known", known)
				return fmt.Errorf("%w: %q", ui.ErrUnknownEvent, event)
			}
			for _, id := range p.inputs {
				if vals, ok := r.PostForm[id]; ok && len(vals) > 0 {
					sess.State.SetField(id, vals[0])
				}
			}
			if err := sess.Events.Fire(event, sess.State); err != nil {
				return err
			}
			return s.renderPage(&buf, r, p, sess)
		})
		if errors.Is(err, ui.ErrUnknownEvent) {
			http.Error(w, "unknown event", http.StatusBadRequest)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}

		slog.Debug("page_event", "page", p.name, "event", event, "session", sess.ID)
		s.collector.PageEvent(p.name, event)
		writeHTML(w, &buf)
	}
}

// renderPage executes the page template into buf.
// PRE: the caller holds sess
func (s *Server) renderPage(buf *bytes.Buffer, r *http.Request, p page, sess *pagesession.Session) error {
	view := pageView{
		Title:            p.title,
		Page:             p.name,
		SessionID:        sess.ID,
		Year:             s.opts.Now().Year(),
		Intro:            s.intros[p.name],
		CSRFField:        csrf.TemplateField(r),
		MembershipTypes:  registration.MembershipTypes,
		ExperienceLevels: registration.ExperienceLevels,
		state:            sess.State,
	}
	if err := s.templates[p.name].ExecuteTemplate(buf, "layout.html", view); err != nil {
		return fmt.Errorf("render %s: %w", p.name, err)
	}
	return nil
}

func writeHTML(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

// internalError logs the real error and returns a generic 500 to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
