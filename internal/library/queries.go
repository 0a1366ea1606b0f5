package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const recordColumns = `mal_id, localName, title, title_english, title_japanese, type, source,
	episodes, status, aired_from, aired_to, duration, rating, score, popularity, "rank",
	background, season, year, broadcast_day, broadcast_time, studio, image_url, updated_at`

const upsertRecord = `INSERT INTO animes (
	mal_id, localName, title, title_english, title_japanese, type, source,
	episodes, status, aired_from, aired_to, duration, rating, score, popularity, "rank",
	background, season, year, broadcast_day, broadcast_time, studio, image_url, updated_at
) VALUES (
	:mal_id, :localName, :title, :title_english, :title_japanese, :type, :source,
	:episodes, :status, :aired_from, :aired_to, :duration, :rating, :score, :popularity, :rank,
	:background, :season, :year, :broadcast_day, :broadcast_time, :studio, :image_url, CURRENT_TIMESTAMP
)
ON CONFLICT(mal_id) DO UPDATE SET
	localName = excluded.localName,
	title = excluded.title,
	title_english = excluded.title_english,
	title_japanese = excluded.title_japanese,
	type = excluded.type,
	source = excluded.source,
	episodes = excluded.episodes,
	status = excluded.status,
	aired_from = excluded.aired_from,
	aired_to = excluded.aired_to,
	duration = excluded.duration,
	rating = excluded.rating,
	score = excluded.score,
	popularity = excluded.popularity,
	"rank" = excluded."rank",
	background = excluded.background,
	season = excluded.season,
	year = excluded.year,
	broadcast_day = excluded.broadcast_day,
	broadcast_time = excluded.broadcast_time,
	studio = excluded.studio,
	image_url = excluded.image_url,
	updated_at = CURRENT_TIMESTAMP
WHERE (
	animes.localName, animes.title, animes.title_english, animes.title_japanese,
	animes.type, animes.source, animes.episodes, animes.status, animes.aired_from,
	animes.aired_to, animes.duration, animes.rating, animes.score, animes.popularity,
	animes."rank", animes.background, animes.season, animes.year, animes.broadcast_day,
	animes.broadcast_time, animes.studio, animes.image_url
) IS NOT (
	excluded.localName, excluded.title, excluded.title_english, excluded.title_japanese,
	excluded.type, excluded.source, excluded.episodes, excluded.status, excluded.aired_from,
	excluded.aired_to, excluded.duration, excluded.rating, excluded.score,
	excluded.popularity, excluded."rank", excluded.background, excluded.season,
	excluded.year, excluded.broadcast_day, excluded.broadcast_time, excluded.studio,
	excluded.image_url
)`

// Upsert inserts rec or overwrites every column of the row sharing its MAL id.
// A row whose columns already equal rec is left untouched, updated_at included.
func (s *Store) Upsert(ctx context.Context, rec Record) error {
	if rec.MalID <= 0 {
		return fmt.Errorf("upsert %q: invalid mal id %d", rec.LocalName, rec.MalID)
	}
	if strings.TrimSpace(rec.LocalName) == "" {
		return fmt.Errorf("upsert mal id %d: local name required", rec.MalID)
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		if _, err := s.db.NamedExecContext(ctx, upsertRecord, rec); err != nil {
			return fmt.Errorf("upsert mal id %d: %w", rec.MalID, err)
		}
		return nil
	})
}

// LookupTitle returns the stored title linked to linkKey. When several rows
// share the local name the most recently changed one wins. The boolean is
// false when no row carries that local name.
func (s *Store) LookupTitle(ctx context.Context, linkKey string) (string, bool, error) {
	ctx = ensureContext(ctx)
	var title string
	err := s.db.GetContext(ctx, &title, `SELECT title FROM animes WHERE localName = ?
		ORDER BY updated_at DESC, mal_id LIMIT 1`, linkKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup title for %q: %w", linkKey, err)
	}
	return title, true, nil
}

// GetByID fetches a record by MAL id, returning nil when absent.
func (s *Store) GetByID(ctx context.Context, malID int64) (*Record, error) {
	ctx = ensureContext(ctx)
	var rec Record
	err := s.db.GetContext(ctx, &rec, `SELECT `+recordColumns+` FROM animes WHERE mal_id = ?`, malID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get mal id %d: %w", malID, err)
	}
	return &rec, nil
}

// List returns every stored record ordered by local name.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	ctx = ensureContext(ctx)
	var records []Record
	if err := s.db.SelectContext(ctx, &records, `SELECT `+recordColumns+` FROM animes ORDER BY localName, mal_id`); err != nil {
		return nil, fmt.Errorf("list animes: %w", err)
	}
	return records, nil
}

// SearchTitle returns records whose titles or local name contain keyword,
// ignoring ASCII case.
func (s *Store) SearchTitle(ctx context.Context, keyword string) ([]Record, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("search keyword required")
	}
	ctx = ensureContext(ctx)
	pattern := "%" + escapeLike(keyword) + "%"
	var records []Record
	err := s.db.SelectContext(ctx, &records, `SELECT `+recordColumns+` FROM animes
		WHERE title LIKE ? ESCAPE '\' OR title_english LIKE ? ESCAPE '\'
			OR title_japanese LIKE ? ESCAPE '\' OR localName LIKE ? ESCAPE '\'
		ORDER BY title, mal_id`, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search animes %q: %w", keyword, err)
	}
	return records, nil
}

// LinkedNames returns the set of local names that have a stored record.
func (s *Store) LinkedNames(ctx context.Context) (map[string]struct{}, error) {
	ctx = ensureContext(ctx)
	var names []string
	if err := s.db.SelectContext(ctx, &names, `SELECT DISTINCT localName FROM animes`); err != nil {
		return nil, fmt.Errorf("list linked names: %w", err)
	}
	linked := make(map[string]struct{}, len(names))
	for _, name := range names {
		linked[name] = struct{}{}
	}
	return linked, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM animes`); err != nil {
		return 0, fmt.Errorf("count animes: %w", err)
	}
	return count, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
