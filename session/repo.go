package session

// Repo stores active sessions keyed by session ID. Keeping sessions
// server-side (in addition to the signed cookie) is what makes logout an
// actual revocation rather than a client-side forget.
type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
