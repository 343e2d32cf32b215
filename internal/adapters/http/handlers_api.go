package web

import (
	"encoding/json"
	"net/http"
	"time"

	"plusultra/internal/adapters/http/perf"
	"plusultra/internal/domain/progress"
	"plusultra/internal/domain/registration"
	"plusultra/internal/domain/roster"
)

type coachJSON struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type rosterResponse struct {
	Text    string      `json:"text"`
	Coaches []coachJSON `json:"coaches"`
}

type progressRequest struct {
	Completed string `json:"completed"`
}

type progressResponse struct {
	Valid     bool   `json:"valid"`
	Completed string `json:"completed,omitempty"`
	Percent   int    `json:"percent"`
	Message   string `json:"message"`
}

type registrationResponse struct {
	Valid   bool              `json:"valid"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// handleAPIRoster handles GET /api/roster.
func (s *Server) handleAPIRoster(w http.ResponseWriter, r *http.Request) {
	coaches := make([]coachJSON, len(roster.Team))
	for i, c := range roster.Team {
		coaches[i] = coachJSON{Name: c.Name, Specialty: c.Specialty}
	}
	writeJSON(w, http.StatusOK, rosterResponse{Text: roster.Show(), Coaches: coaches})
}

// handleAPIProgress handles POST /api/progress.
func (s *Server) handleAPIProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	res := progress.Update(req.Completed)
	resp := progressResponse{Valid: res.Valid, Percent: res.Percent, Message: res.Message}
	if res.Valid {
		resp.Completed = res.Display()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAPIValidateRegistration handles POST /api/registrations/validate.
// An invalid form is still a 200; the verdict is in the body.
func (s *Server) handleAPIValidateRegistration(w http.ResponseWriter, r *http.Request) {
	var fields registration.Fields
	if err := strictDecode(r, &fields); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	res := registration.Validate(fields, s.opts.Now())
	errs := make(map[string]string, len(res.Errors))
	for f, msg := range res.Errors {
		errs[string(f)] = msg
	}
	writeJSON(w, http.StatusOK, registrationResponse{
		Valid:   res.Valid,
		Message: res.Message(),
		Errors:  errs,
	})
}

// statsWindow is how far back GET /api/stats looks.
const statsWindow = time.Hour

type statsResponse struct {
	perf.Summary
	// Recorded counts every sample since start, including those outside the window.
	Recorded int64 `json:"recorded"`
}

// handleAPIStats handles GET /api/stats.
func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		Summary:  s.collector.Summarize(time.Now().Add(-statsWindow), 5),
		Recorded: s.collector.Total(),
	})
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
