package account

import (
	"net/mail"
	"strings"
)

// Validation messages surfaced back to the registration form
const (
	MsgEmailInvalid     = "Email address is not valid."
	MsgUsernameTooShort = "Username must be at least 3 characters."
	MsgPasswordTooShort = "Password must be at least 6 characters."
	MsgPasswordMismatch = "Passwords do not match."
	MsgEmailTaken       = "This email is already used."
	MsgUsernameTaken    = "This username is already used."
)

// FieldError describes one failed constraint on one input field
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationErrors is the collected list of failed constraints.
// Formal validation does not short-circuit: every failing field reports.
type ValidationErrors []FieldError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Msg
	}
	return strings.Join(msgs, "; ")
}

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// validateRegistration checks field formats and collects every failure
func validateRegistration(in RegisterInput) ValidationErrors {
	var errs ValidationErrors

	if !validEmail(in.Email) {
		errs = append(errs, FieldError{Field: "email", Msg: MsgEmailInvalid})
	}
	if len(in.Username) < minUsernameLen {
		errs = append(errs, FieldError{Field: "username", Msg: MsgUsernameTooShort})
	}
	if len(in.Password) < minPasswordLen {
		errs = append(errs, FieldError{Field: "password", Msg: MsgPasswordTooShort})
	}
	if in.ConfirmPassword != in.Password {
		errs = append(errs, FieldError{Field: "confirmPassword", Msg: MsgPasswordMismatch})
	}

	return errs
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
