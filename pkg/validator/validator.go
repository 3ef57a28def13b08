package validator

import (
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// Simple local@domain shape; anything stricter is the mail provider's
// problem.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// ValidateRegister checks the registration form. Rules run in order
// and stop at the first failure: empty username, then email shape,
// then password length.
func ValidateRegister(username, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
		return errs
	}
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		errs.Add("email", "Invalid email address")
		return errs
	}
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return errs
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidateItem checks the item posting form: every field must be
// non-empty after trimming.
func ValidateItem(title, description, category, location string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(description) == "" {
		errs.Add("description", "Description is required")
	}
	if strings.TrimSpace(category) == "" {
		errs.Add("category", "Category is required")
	}
	if strings.TrimSpace(location) == "" {
		errs.Add("location", "Location is required")
	}

	return errs
}
