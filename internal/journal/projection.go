package journal

import (
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

// Projection holds the latest store snapshot and memoizes the query view
// over it. The cached list is reused until either the snapshot version or
// the query changes.
type Projection struct {
	version uint64
	entries []store.Entry
	loaded  bool

	cacheValid   bool
	cacheVersion uint64
	cacheQuery   Query
	cache        []store.Entry
}

// Reset installs a new snapshot. An older version is ignored so a late
// reload cannot overwrite a newer one.
func (p *Projection) Reset(version uint64, entries []store.Entry) bool {
	if p.loaded && version < p.version {
		return false
	}
	p.version = version
	p.entries = entries
	p.loaded = true
	return true
}

func (p *Projection) Version() uint64 { return p.version }

// Entries returns the snapshot in store order.
func (p *Projection) Entries() []store.Entry { return p.entries }

func (p *Projection) Len() int { return len(p.entries) }

// Visible returns Apply(entries, q), computing it at most once per
// (version, query) pair.
func (p *Projection) Visible(q Query) []store.Entry {
	if p.cacheValid && p.cacheVersion == p.version && p.cacheQuery == q {
		return p.cache
	}
	p.cache = Apply(p.entries, q)
	p.cacheVersion = p.version
	p.cacheQuery = q
	p.cacheValid = true
	return p.cache
}

func (p *Projection) Tags() []string { return Tags(p.entries) }

func (p *Projection) Streak(now time.Time) int { return EntryStreak(p.entries, now) }

func (p *Projection) HasEntryOn(day time.Time) bool { return HasEntryOn(p.entries, day) }

// Favorites counts entries marked as favorite.
func (p *Projection) Favorites() int {
	n := 0
	for _, e := range p.entries {
		if e.Favorite {
			n++
		}
	}
	return n
}
