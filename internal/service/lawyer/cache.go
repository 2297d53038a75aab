package lawyer

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lawlink/lawlink-api/internal/model"
)

// searchCache keeps recent directory pages in process memory. Entries are
// short-lived and the whole cache is flushed on any profile or review write,
// so staleness is bounded by the TTL.
type searchCache struct {
	c *gocache.Cache
}

func newSearchCache(ttl time.Duration) *searchCache {
	return &searchCache{
		c: gocache.New(ttl, 2*ttl),
	}
}

func (sc *searchCache) Key(f *model.LawyerSearchFilters) string {
	return fmt.Sprintf("%s|%s|%s|%.2f|%.2f|%d|%s|%t|%.1f|%s|%d|%d",
		f.Query, f.Specialization, f.Location,
		f.MinRate, f.MaxRate, f.MinExperience,
		f.Language, f.VerifiedOnly, f.MinRating,
		f.SortBy, f.Page, f.Limit,
	)
}

func (sc *searchCache) Get(key string) (*model.LawyerSearchPage, bool) {
	v, ok := sc.c.Get(key)
	if !ok {
		return nil, false
	}
	page, ok := v.(*model.LawyerSearchPage)
	return page, ok
}

func (sc *searchCache) Set(key string, page *model.LawyerSearchPage) {
	sc.c.SetDefault(key, page)
}

func (sc *searchCache) Flush() {
	sc.c.Flush()
}
