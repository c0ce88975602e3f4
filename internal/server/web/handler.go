package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/accountdesk/internal/common"
)

// --- static pages ---

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", viewData{Title: "Home"})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "about", viewData{Title: "About"})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "contact", viewData{Title: "Contact"})
}

func (s *Server) handleFAQ(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "faq", viewData{Title: "FAQ"})
}

func (s *Server) handleHelloWorld(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "Hello World from accountdesk!"}); err != nil {
		s.logger.Error(r.Context(), "failed to write JSON response", "error", err)
	}
}

// serverError renders the generic failure page and logs the cause.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	s.render(w, r, http.StatusInternalServerError, "error", viewData{Title: "Error"})
}

// --- registration ---

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", viewData{Title: "Register", Form: &registerForm{}})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := bindRegisterForm(r)
	if errs := form.validate(); len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "register", viewData{Title: "Register", Form: form, Errors: errs})
		return
	}

	_, err := s.accounts.Register(r.Context(), form.Email, form.DisplayName, form.Password)
	if errors.Is(err, common.ErrorDuplicateEmail) {
		s.render(w, r, http.StatusUnprocessableEntity, "register", viewData{
			Title: "Register", Form: form,
			Errors: []string{"This email is already registered."},
		})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	setFlash(w, "Registration successful. Please log in.")
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

// --- login / logout ---

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", viewData{
		Title: "Log in", Form: &loginForm{},
		ReturnURL: localReturnURL(r.URL.Query().Get("returnUrl")),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	returnURL := localReturnURL(r.URL.Query().Get("returnUrl"))

	form := bindLoginForm(r)
	if errs := form.validate(); len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "login", viewData{
			Title: "Log in", Form: form, Errors: errs, ReturnURL: returnURL,
		})
		return
	}

	user, err := s.accounts.Authenticate(r.Context(), form.Email, form.Password)
	if errors.Is(err, common.ErrorInvalidCredentials) {
		s.render(w, r, http.StatusUnprocessableEntity, "login", viewData{
			Title: "Log in", Form: form,
			Errors:    []string{"Invalid login attempt."},
			ReturnURL: returnURL,
		})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	if err := s.issueSession(w, user, form.RememberMe); err != nil {
		s.serverError(w, r, err)
		return
	}

	if returnURL == "" {
		returnURL = "/"
	}
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// localReturnURL accepts only same-site paths, never absolute URLs, so the
// login redirect cannot be abused as an open redirector.
func localReturnURL(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return ""
}

// --- password reset ---

func (s *Server) handleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forgot_password", viewData{Title: "Forgot password", Form: &forgotPasswordForm{}})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	form := bindForgotPasswordForm(r)
	if errs := form.validate(); len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "forgot_password", viewData{
			Title: "Forgot password", Form: form, Errors: errs,
		})
		return
	}

	req, err := s.accounts.RequestPasswordReset(r.Context(), form.Email)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	// Same message whether or not the email exists. The token itself goes
	// only into this requester's response, standing in for out-of-band
	// delivery (there is no mailer in this app).
	data := viewData{
		Title: "Forgot password",
		Form:  &forgotPasswordForm{},
		Flash: "If the email exists, a reset token was generated.",
	}
	if req != nil {
		data.ResetToken = req.Token
	}
	s.render(w, r, http.StatusOK, "forgot_password", data)
}

func (s *Server) handleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "reset_password", viewData{Title: "Reset password", Form: &resetPasswordForm{}})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	form := bindResetPasswordForm(r)
	if errs := form.validate(); len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "reset_password", viewData{
			Title: "Reset password", Form: form, Errors: errs,
		})
		return
	}

	err := s.accounts.RedeemPasswordReset(r.Context(), form.Email, form.Token, form.NewPassword)
	if errors.Is(err, common.ErrorInvalidOrExpiredToken) {
		s.render(w, r, http.StatusUnprocessableEntity, "reset_password", viewData{
			Title: "Reset password", Form: form,
			Errors: []string{"Invalid or expired token."},
		})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	setFlash(w, "Password reset successful. Please log in.")
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

// --- admin ---

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.accounts.ListUsers(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "admin_users", viewData{Title: "Users", Users: users})
}
