package view

import "errors"

// ErrReadOnlyScope is returned when a mutating ledger operation is
// attempted through a scope that only permits reads (admin read-only
// view, public snapshot).
var ErrReadOnlyScope = errors.New("scope is read-only")

// ErrScopeMismatch is returned when an owner scope tries to touch a
// ledger it does not own.
var ErrScopeMismatch = errors.New("scope does not cover this ledger")

type ScopeKind int

const (
	ScopeOwner ScopeKind = iota
	ScopeAdminReadOnly
	ScopePublic
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeOwner:
		return "owner"
	case ScopeAdminReadOnly:
		return "admin-read-only"
	case ScopePublic:
		return "public"
	default:
		return "unknown"
	}
}

// Scope is the access class through which a ledger snapshot is viewed.
// It is an explicit value passed into the ledger service, never inferred
// from ambient state.
type Scope struct {
	kind   ScopeKind
	userID int
}

func Owner(userID int) Scope {
	return Scope{kind: ScopeOwner, userID: userID}
}

func AdminReadOnly(targetUserID int) Scope {
	return Scope{kind: ScopeAdminReadOnly, userID: targetUserID}
}

func Public() Scope {
	return Scope{kind: ScopePublic}
}

func (s Scope) Kind() ScopeKind { return s.kind }

// UserID is the user whose ledger this scope reads. Zero for the public
// scope, which never reads an individual ledger.
func (s Scope) UserID() int { return s.userID }

// CanRead reports whether the scope may read the given owner's ledger.
func (s Scope) CanRead(ownerID int) bool {
	switch s.kind {
	case ScopeOwner, ScopeAdminReadOnly:
		return s.userID == ownerID
	default:
		return false
	}
}

// Covers reports whether a change to the given owner's ledger is
// visible through this scope. The public scope covers every owner,
// since anonymized aggregates shift with any ledger change.
func (s Scope) Covers(ownerID int) bool {
	if s.kind == ScopePublic {
		return true
	}
	return s.userID == ownerID
}

// CheckMutate returns nil only for an owner scope mutating its own
// ledger. All other combinations are authorization failures, enforced
// here rather than in any presentation layer.
func (s Scope) CheckMutate(ownerID int) error {
	if s.kind != ScopeOwner {
		return ErrReadOnlyScope
	}
	if s.userID != ownerID {
		return ErrScopeMismatch
	}
	return nil
}
