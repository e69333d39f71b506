// Package pii redacts personally identifiable values before they are written
// to logs. Masking is lossy on purpose and must never be used for storage.
package pii

import (
	"strings"

	"github.com/rs/zerolog"
)

// Kind identifies how a value is redacted.
type Kind string

const (
	Email Kind = "email"
	Phone Kind = "phone"
	Name  Kind = "name"
)

const redacted = "***"

// Mask returns the redacted form of value. The boolean is false when value is
// empty, meaning there is nothing to log. Kinds other than Email, Phone and
// Name are returned unchanged. Lengths are counted in runes.
func Mask(kind Kind, value string) (string, bool) {
	if value == "" {
		return "", false
	}

	switch kind {
	case Email:
		parts := strings.Split(value, "@")
		if len(parts) == 2 {
			return head(parts[0], 2) + redacted + "@" + parts[1], true
		}
		return head(value, 2) + redacted, true

	case Phone:
		r := []rune(value)
		if len(r) >= 4 {
			return string(r[:2]) + redacted + string(r[len(r)-2:]), true
		}
		return redacted, true

	case Name:
		r := []rune(value)
		if len(r) > 2 {
			return string(r[:2]) + redacted, true
		}
		return redacted, true
	}

	return value, true
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return s
	}
	return string(r[:n])
}

// Str adds the masked value to e under key, or a JSON null when the value is
// empty.
func Str(e *zerolog.Event, key string, kind Kind, value string) *zerolog.Event {
	if m, ok := Mask(kind, value); ok {
		return e.Str(key, m)
	}
	return e.Interface(key, nil)
}

// Field is one key/value pair for Dict.
type Field struct {
	Key   string
	Kind  Kind
	Value string
}

// Dict builds a zerolog dictionary of masked fields, suitable for
// Event.Dict.
func Dict(fields ...Field) *zerolog.Event {
	d := zerolog.Dict()
	for _, f := range fields {
		d = Str(d, f.Key, f.Kind, f.Value)
	}
	return d
}
