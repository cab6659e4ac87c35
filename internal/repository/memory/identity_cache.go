package memory

import (
	"time"

	"notes-sharing-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IdentityCache keeps recently resolved users so the auth gate does not hit
// the database on every request. Users are immutable after signup, so a
// short TTL is only needed to pick up deletions.
type IdentityCache struct {
	cache *cache.Cache
}

func NewIdentityCache() *IdentityCache {
	// Default expiration 5 minutes, purge sweep every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &IdentityCache{
		cache: c,
	}
}

func (r *IdentityCache) Save(user *entity.User) {
	r.cache.Set(user.Id.String(), user, cache.DefaultExpiration)
}

func (r *IdentityCache) Get(userId uuid.UUID) (*entity.User, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.User), true
	}
	return nil, false
}

func (r *IdentityCache) Delete(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
