package rara

import "context"

// Session owns the collection and error log of one crawl session.
type Session struct {
	Collection *Collection
	Errors     *ErrorLog
}

// NewSession returns a session with an empty collection and error log.
func NewSession() *Session {
	return &Session{
		Collection: NewCollection(),
		Errors:     &ErrorLog{},
	}
}

// Restore replaces the session's collection with c and clears the error log.
// Errors from before a reload no longer describe the restored state.
func (s *Session) Restore(c *Collection) {
	s.Collection = c
	s.Errors.Clear()
}

// Load reads the collection stored at path and restores the session to it.
// On failure the session is left unchanged.
func (s *Session) Load(ctx context.Context, store CollectionStore, path string) error {
	c, err := store.Load(ctx, path)
	if err != nil {
		return err
	}
	s.Restore(c)
	return nil
}
