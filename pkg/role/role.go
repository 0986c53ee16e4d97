// Package role defines the closed set of marketplace roles and a small
// exhaustive lookup table keyed by them.
package role

import (
	"errors"
	"strings"
)

type Role string

const (
	JobSeeker Role = "job_seeker"
	Employer  Role = "employer"
	Admin     Role = "admin"
)

// ErrUnknown is returned by Parse for anything outside the closed set.
var ErrUnknown = errors.New("role: unknown role")

// All lists every role in a stable order.
func All() []Role { return []Role{JobSeeker, Employer, Admin} }

// SelfService lists the roles a person may pick when registering. Admins are
// only created through bootstrap.
func SelfService() []Role { return []Role{JobSeeker, Employer} }

// Parse normalises s and maps it onto a known role.
func Parse(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknown
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case JobSeeker, Employer, Admin:
		return true
	}
	return false
}

// IsSelfService reports whether r may be chosen at registration.
func (r Role) IsSelfService() bool {
	return r == JobSeeker || r == Employer
}

func (r Role) String() string { return string(r) }

// Map holds one value per role. Adding a role means adding a field here, which
// makes every keyed literal of Map a compile-checked place to revisit.
type Map[T any] struct {
	JobSeeker T
	Employer  T
	Admin     T
}

// Lookup returns the value for r. ok is false for roles outside the set.
func (m Map[T]) Lookup(r Role) (v T, ok bool) {
	switch r {
	case JobSeeker:
		return m.JobSeeker, true
	case Employer:
		return m.Employer, true
	case Admin:
		return m.Admin, true
	}
	return v, false
}
