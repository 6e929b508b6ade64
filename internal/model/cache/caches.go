package cache

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/cache"
)

type Flusher func() error

// ErrUnknownCache is returned by Delete when no cache is registered under the given name.
var ErrUnknownCache = errors.New("unknown cache name")

var (
	AccountByToken *cache.Set[model.Account]

	Outlets           *cache.Singular[[]*model.Outlet]
	OutletContactByID *cache.Set[model.OutletContact]

	once sync.Once

	SetMap             map[string]Flusher
	SetKeyDeleterMap   map[string]func(key string) error
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		cache.Populate(client)
		initializeCaches()
	})
}

// Delete drops a single key of the named set when key is given, or the whole
// named cache otherwise.
func Delete(name string, key null.String) error {
	if key.Valid {
		if deleter, ok := SetKeyDeleterMap[name]; ok {
			return deleter(key.String)
		}
		return errors.Wrap(ErrUnknownCache, name)
	}

	if flusher, ok := SingularFlusherMap[name]; ok {
		return flusher()
	}
	if flusher, ok := SetMap[name]; ok {
		return flusher()
	}
	return errors.Wrap(ErrUnknownCache, name)
}

// Names lists the registered cache names.
func Names() []string {
	names := make([]string, 0, len(SetMap)+len(SingularFlusherMap))
	for name := range SingularFlusherMap {
		names = append(names, name)
	}
	for name := range SetMap {
		names = append(names, name)
	}
	return names
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)
	SetKeyDeleterMap = make(map[string]func(key string) error)
	SingularFlusherMap = make(map[string]Flusher)

	// account
	AccountByToken = cache.NewSet[model.Account]("account#accessToken")

	SetMap["account#accessToken"] = AccountByToken.Flush
	SetKeyDeleterMap["account#accessToken"] = AccountByToken.Delete

	// outlet
	Outlets = cache.NewSingular[[]*model.Outlet]("outlets")
	OutletContactByID = cache.NewSet[model.OutletContact]("outletContact#outletId")

	SingularFlusherMap["outlets"] = Outlets.Delete
	SetMap["outletContact#outletId"] = OutletContactByID.Flush
	SetKeyDeleterMap["outletContact#outletId"] = OutletContactByID.Delete
}
