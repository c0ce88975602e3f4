package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/accountdesk/internal/server/auth"
	"github.com/dmitrijs2005/accountdesk/internal/server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// viewData is passed to every rendered page.
type viewData struct {
	Title      string
	Flash      string
	Errors     []string
	Session    *auth.Claims
	Form       any
	Users      []*models.User
	ReturnURL  string
	ResetToken string
}

// parseTemplates builds one template set per page, each sharing the layout.
func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{
		"home", "about", "contact", "faq",
		"register", "login", "forgot_password", "reset_password",
		"admin_users", "error",
	}

	sets := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		sets[page] = t
	}

	return sets, nil
}

// render writes the named page. The session claims and any pending flash are
// filled in here so handlers only provide page-specific fields.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data viewData) {
	data.Session = claimsFromContext(r.Context())
	if data.Flash == "" {
		data.Flash = popFlash(w, r)
	}

	t, ok := s.templates[page]
	if !ok {
		s.logger.Error(r.Context(), "unknown template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.logger.Error(r.Context(), "template render failed", "page", page, "error", err)
	}
}
