package repository

import (
	"context"
	"time"

	ttlcache "github.com/jellydator/ttlcache/v3"
	"github.com/pyama86/YAIB/domain/entity"
)

// MemoryRepository はDynamoDBを使わない構成向けのインシデントストア。
// レコードはcloseまで保持すればよいので、closeされないまま残った
// インシデントはTTLで回収する。プロセス再起動で消えることは仕様上許容される。
type MemoryRepository struct {
	cache *ttlcache.Cache[string, *entity.Incident]
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	r := &MemoryRepository{
		cache: ttlcache.New(ttlcache.WithTTL[string, *entity.Incident](ttl)),
	}
	go r.cache.Start()
	return r
}

func (r *MemoryRepository) FindIncidentByChannel(_ context.Context, channel string) (*entity.Incident, error) {
	item := r.cache.Get(channel)
	if item == nil {
		return nil, nil
	}
	return item.Value(), nil
}

func (r *MemoryRepository) SaveIncident(_ context.Context, incident *entity.Incident) error {
	r.cache.Set(incident.ChannelID, incident, ttlcache.DefaultTTL)
	return nil
}

func (r *MemoryRepository) CloseIncident(_ context.Context, channel string) error {
	item := r.cache.Get(channel)
	if item == nil {
		return nil
	}
	incident := item.Value()
	if !incident.ClosedAt.IsZero() {
		return nil
	}
	incident.ClosedAt = time.Now()
	r.cache.Set(channel, incident, ttlcache.DefaultTTL)
	return nil
}
