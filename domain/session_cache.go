package domain

import "context"

// SessionCache holds per-visitor opaque state: the authenticated user snapshot,
// the email-change authorization flag and the serialized booking wizard. All
// entries share the session TTL and are cleared on logout.
type SessionCache interface {
	PostSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DelSession(ctx context.Context, sessionID string) error

	PostWizard(ctx context.Context, sessionID string, payload string) error
	GetWizard(ctx context.Context, sessionID string) (string, error)
	DelWizard(ctx context.Context, sessionID string) error
}
