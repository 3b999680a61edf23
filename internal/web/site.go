// Package web renders the public marketing pages and the signed-in admin
// landing page.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

type page struct {
	file  string
	title string
}

var pages = map[string]page{
	"/":               {"home", "Private Chefs on Kauai"},
	"/about":          {"about", "About"},
	"/offerings":      {"offerings", "Offerings"},
	"/contact":        {"contact", "Contact"},
	"/refer":          {"refer", "Refer a Friend"},
	"/reset-complete": {"reset_complete", "Password Changed"},
	"/login":          {"login", "Admin Login"},
}

type Offering struct {
	Title       string
	Description string
}

var offerings = []Offering{
	{"Cocktail & Hors d'oeuvres", "Perfect for golden-hour gatherings. Passed appetizers and wine pairings brought to your lanai or event space, crafted with Kauai-grown ingredients."},
	{"Meal Plans", "Seasonal, health-focused meals tailored to your dietary needs, delivered fresh or prepared in your kitchen."},
	{"Private Dinners", "A multi-course menu inspired by the flavors of Kauai. Planning, prep, plating and cleanup are included."},
}

type PageData struct {
	Title          string
	Year           int
	Offerings      []Offering
	ContactMethods []entity.ContactMethod
	ReferrerID     string
	ReferrerName   string
	AdminEmail     string
}

type ReferrerLookup interface {
	Execute(ctx context.Context, id string) (*usecase.ReferrerOutput, error)
}

type Site struct {
	Referrers ReferrerLookup
	Sessions  middleware.SessionVerifier
	sets      map[string]*template.Template
	now       func() time.Time
	logger    zerolog.Logger
}

func NewSite(referrers ReferrerLookup, sessions middleware.SessionVerifier, logger zerolog.Logger) (*Site, error) {
	s := &Site{
		Referrers: referrers,
		Sessions:  sessions,
		sets:      make(map[string]*template.Template),
		now:       time.Now,
		logger:    logger.With().Str("component", "web").Logger(),
	}
	names := []string{"admin", "not_found"}
	for _, p := range pages {
		names = append(names, p.file)
	}
	for _, name := range names {
		set, err := template.ParseFS(templateFS, "templates/layout.html", "templates/json_form.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		s.sets[name] = set
	}
	return s, nil
}

// Routes mounts the public pages, the admin landing page and the 404
// handler on r.
func (s *Site) Routes(r chi.Router) {
	for path, p := range pages {
		r.Get(path, s.pageHandler(p))
	}
	r.Get("/admin", s.Admin)
	r.NotFound(s.NotFound)
}

func (s *Site) pageHandler(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.baseData(p.title)
		switch p.file {
		case "offerings":
			data.Offerings = offerings
		case "contact":
			data.ContactMethods = []entity.ContactMethod{entity.ContactMethodEmail, entity.ContactMethodText, entity.ContactMethodCall}
			s.resolveReferrer(r, &data)
		}
		s.render(w, http.StatusOK, p.file, data)
	}
}

// resolveReferrer greets referred guests by name. An unknown or failing
// lookup leaves the page as it would be without ?ref.
func (s *Site) resolveReferrer(r *http.Request, data *PageData) {
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" || s.Referrers == nil {
		return
	}
	out, err := s.Referrers.Execute(r.Context(), ref)
	if err != nil {
		s.logger.Warn().Err(err).Str("referrer_id", ref).Msg("referrer lookup failed")
		return
	}
	data.ReferrerID = out.ID
	data.ReferrerName = out.Name
}

// Admin shows the signed-in landing page. Browsers without a valid session
// are sent to the login page.
func (s *Site) Admin(w http.ResponseWriter, r *http.Request) {
	raw := middleware.SessionToken(r)
	if raw == "" || s.Sessions == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	session, err := s.Sessions.Verify(r.Context(), raw)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	data := s.baseData("Admin")
	data.AdminEmail = session.Email
	s.render(w, http.StatusOK, "admin", data)
}

func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "not_found", s.baseData("Not Found"))
}

func (s *Site) baseData(title string) PageData {
	return PageData{Title: title, Year: s.now().Year()}
}

func (s *Site) render(w http.ResponseWriter, status int, name string, data PageData) {
	var buf bytes.Buffer
	if err := s.sets[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
