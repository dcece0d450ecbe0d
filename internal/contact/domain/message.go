package domain

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	FieldFullName = "fullName"
	FieldSubject  = "subject"
	FieldEmail    = "email"
	FieldBody     = "body"

	minFieldLength = 3
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Message struct {
	FullName string `json:"fullName"`
	Subject  string `json:"subject"`
	Email    string `json:"email"`
	Body     string `json:"body"`
}

// ValidationErrors maps a form field to the message shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

// Validate checks every field and reports all problems at once. It returns
// nil when the message can be submitted.
func (m Message) Validate() ValidationErrors {
	errs := ValidationErrors{}

	checkMinLength(errs, FieldFullName, m.FullName, "Full name is required.", "Full name must be at least 3 characters.")
	checkMinLength(errs, FieldSubject, m.Subject, "Subject is required.", "Subject must be at least 3 characters.")
	checkMinLength(errs, FieldBody, m.Body, "Message is required.", "Message must be at least 3 characters.")

	switch {
	case m.Email == "":
		errs[FieldEmail] = "Email is required."
	case !emailRegex.MatchString(m.Email):
		errs[FieldEmail] = "Must be a valid email address."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkMinLength(errs ValidationErrors, field, val, required, tooShort string) {
	switch {
	case val == "":
		errs[field] = required
	case utf8.RuneCountInString(val) < minFieldLength:
		errs[field] = tooShort
	}
}
