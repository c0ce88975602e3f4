package web

import (
	"net/http"
	"net/mail"
)

// minPasswordLen matches the registration and reset forms.
const minPasswordLen = 6

// Form binding and cross-field checks live here, at the HTTP boundary; the
// lifecycle service receives already-validated values.

type registerForm struct {
	DisplayName     string
	Email           string
	Password        string
	ConfirmPassword string
}

func bindRegisterForm(r *http.Request) *registerForm {
	return &registerForm{
		DisplayName:     r.PostFormValue("displayName"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
}

func (f *registerForm) validate() []string {
	var errs []string
	if f.DisplayName == "" {
		errs = append(errs, "Full name is required.")
	}
	errs = appendEmailErrors(errs, f.Email)
	errs = appendPasswordErrors(errs, f.Password, f.ConfirmPassword)
	return errs
}

type loginForm struct {
	Email      string
	Password   string
	RememberMe bool
}

func bindLoginForm(r *http.Request) *loginForm {
	return &loginForm{
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		RememberMe: r.PostFormValue("rememberMe") == "on",
	}
}

func (f *loginForm) validate() []string {
	var errs []string
	errs = appendEmailErrors(errs, f.Email)
	if f.Password == "" {
		errs = append(errs, "Password is required.")
	}
	return errs
}

type forgotPasswordForm struct {
	Email string
}

func bindForgotPasswordForm(r *http.Request) *forgotPasswordForm {
	return &forgotPasswordForm{Email: r.PostFormValue("email")}
}

func (f *forgotPasswordForm) validate() []string {
	return appendEmailErrors(nil, f.Email)
}

type resetPasswordForm struct {
	Email           string
	Token           string
	NewPassword     string
	ConfirmPassword string
}

func bindResetPasswordForm(r *http.Request) *resetPasswordForm {
	return &resetPasswordForm{
		Email:           r.PostFormValue("email"),
		Token:           r.PostFormValue("token"),
		NewPassword:     r.PostFormValue("newPassword"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
}

func (f *resetPasswordForm) validate() []string {
	var errs []string
	errs = appendEmailErrors(errs, f.Email)
	if f.Token == "" {
		errs = append(errs, "Token is required.")
	}
	errs = appendPasswordErrors(errs, f.NewPassword, f.ConfirmPassword)
	return errs
}

func appendEmailErrors(errs []string, email string) []string {
	if email == "" {
		return append(errs, "Email is required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return append(errs, "Email is not a valid address.")
	}
	return errs
}

func appendPasswordErrors(errs []string, password, confirm string) []string {
	if len(password) < minPasswordLen {
		errs = append(errs, "Password must be at least 6 characters.")
	}
	if password != confirm {
		errs = append(errs, "Passwords do not match.")
	}
	return errs
}
