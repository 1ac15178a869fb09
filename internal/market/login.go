package market

import (
	"strings"

	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

type LoginMethod string

const (
	MethodName  LoginMethod = "name"
	MethodEmail LoginMethod = "email"
	MethodPhone LoginMethod = "phone"
)

// LoginMethods lists the tabs of the login form in display order.
var LoginMethods = []LoginMethod{MethodName, MethodEmail, MethodPhone}

// ParseLoginMethod falls back to MethodName for anything unknown.
func ParseLoginMethod(s string) LoginMethod {
	switch LoginMethod(s) {
	case MethodEmail, MethodPhone:
		return LoginMethod(s)
	default:
		return MethodName
	}
}

func (m LoginMethod) Label() string {
	s := string(m)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// InputType is the HTML input type used for the method.
func (m LoginMethod) InputType() string {
	switch m {
	case MethodEmail:
		return "email"
	case MethodPhone:
		return "tel"
	default:
		return "text"
	}
}

func (m LoginMethod) Placeholder() string {
	switch m {
	case MethodEmail:
		return "Enter your email address"
	case MethodPhone:
		return "Enter your phone number"
	default:
		return "Enter your name or company"
	}
}

// LoginForm is the state of the login page. The value entered under any
// method is used as the display name; nothing is verified.
type LoginForm struct {
	Method LoginMethod
	Value  string
	Role   models.Role
	Error  string
}

func NewLoginForm() *LoginForm {
	return &LoginForm{Method: MethodName, Role: models.RoleBuyer}
}

// SwitchMethod starts a fresh input for m.
func (f *LoginForm) SwitchMethod(m LoginMethod) {
	f.Method = m
	f.Value = ""
	f.Error = ""
}

// Submit calls login once with the entered value and role, unless the value
// is blank, in which case Error is set and login is not called. It reports
// whether login was called.
func (f *LoginForm) Submit(login func(name string, role models.Role) error) (bool, error) {
	if blank(f.Value) {
		f.Error = LoginErrorText
		return false, nil
	}
	f.Error = ""
	return true, login(f.Value, f.Role)
}
