package library

import "context"

// SetUpdatedAt rewrites a row's timestamp so tests can tell writes apart
// without waiting for the clock.
func (s *Store) SetUpdatedAt(ctx context.Context, malID int64, stamp string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE animes SET updated_at = ? WHERE mal_id = ?`, stamp, malID)
	return err
}
