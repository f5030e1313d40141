package validate

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Collect drops nil checks and returns nil when everything passed.
func Collect(checks ...*ErrField) error {
	var errs Errs
	for _, c := range checks {
		if c != nil {
			errs = append(errs, *c)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// NotBlank checks an optional value only when it was supplied.
func NotBlank(field string, value *string) *ErrField {
	if value == nil {
		return nil
	}
	return Required(field, *value)
}

func MinLen(field, value string, n int) *ErrField {
	if len(value) < n {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(n) + " characters"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 {
		return &ErrField{Field: field, Msg: "invalid email"}
	}
	return nil
}

func OneOf(field, value string, allowed ...string) *ErrField {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ErrField{Field: field, Msg: "must be one of " + strings.Join(allowed, ", ")}
}

func JSON(field, value string) *ErrField {
	if !json.Valid([]byte(value)) {
		return &ErrField{Field: field, Msg: "must be valid JSON"}
	}
	return nil
}

// MaxLen counts characters, as VARCHAR(n) does.
func MaxLen(field, value string, n int) *ErrField {
	if utf8.RuneCountInString(value) > n {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(n) + " characters"}
	}
	return nil
}
