package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domain "lendvault-backend/internal/domain/oracle"
)

// RedisOracle reads the latest quote a price feeder publishes to a redis
// key. The read is point-in-time: the ledger consumes whatever is there and
// never re-checks, freshness is the feeder's responsibility (it can expire
// the key, in which case borrowing is refused until a new quote lands).
type RedisOracle struct {
	rdb *redis.Client
	key string
}

func NewRedisOracle(rdb *redis.Client, key string) *RedisOracle {
	return &RedisOracle{rdb: rdb, key: key}
}

// payload the feeder writes: {"price": 15000, "at": "..."} — price in USD
// cents per SOL. A bare integer string is accepted too.
type feedPayload struct {
	Price uint64    `json:"price"`
	At    time.Time `json:"at"`
}

func (o *RedisOracle) LatestQuote(ctx context.Context) (domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := o.rdb.Get(ctx, o.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Quote{}, domain.ErrNoQuote
		}
		return domain.Quote{}, err
	}

	var p feedPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.Price == 0 {
		// fall back to a bare integer
		var n uint64
		if err2 := json.Unmarshal(raw, &n); err2 != nil || n == 0 {
			return domain.Quote{}, domain.ErrNoQuote
		}
		p = feedPayload{Price: n}
	}
	if p.At.IsZero() {
		p.At = time.Now().UTC()
	}
	return domain.Quote{Price: p.Price, At: p.At}, nil
}
