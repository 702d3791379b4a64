package geocode

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// zipCache is a short-TTL sqlite cache of ZIP resolutions. It avoids
// re-geocoding the same ZIP across restarts. All operations are best effort;
// a cache failure never fails a lookup.
type zipCache struct {
	db  *sql.DB
	ttl time.Duration
}

const zipCacheSchema = `
CREATE TABLE IF NOT EXISTS zip_cache (
	zip        TEXT PRIMARY KEY,
	city       TEXT NOT NULL,
	state_name TEXT NOT NULL,
	source     TEXT NOT NULL,
	cached_at  TIMESTAMP NOT NULL
);`

func openZipCache(path string, ttl time.Duration) (*zipCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: open cache")
	}
	if _, err := db.Exec(zipCacheSchema); err != nil {
		db.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "geocode: init cache schema")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &zipCache{db: db, ttl: ttl}, nil
}

func (c *zipCache) get(ctx context.Context, zip string) *Result {
	row := c.db.QueryRowContext(ctx,
		`SELECT city, state_name, source, cached_at FROM zip_cache WHERE zip = ?`, zip)

	var r Result
	var cachedAt time.Time
	if err := row.Scan(&r.City, &r.StateName, &r.Source, &cachedAt); err != nil {
		return nil
	}
	if time.Since(cachedAt) > c.ttl {
		_, _ = c.db.ExecContext(ctx, `DELETE FROM zip_cache WHERE zip = ?`, zip)
		return nil
	}
	r.Matched = true
	return &r
}

func (c *zipCache) put(ctx context.Context, zip string, r *Result) {
	if !r.Matched {
		return
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO zip_cache (zip, city, state_name, source, cached_at)
		 VALUES (?, ?, ?, ?, ?)`,
		zip, r.City, r.StateName, r.Source, time.Now().UTC())
	if err != nil {
		zap.L().Debug("geocode: cache write failed", zap.String("zip", zip), zap.Error(err))
	}
}
