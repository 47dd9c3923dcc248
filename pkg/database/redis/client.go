package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/chillibowl/pkg/receipt"
	"github.com/huynhanx03/chillibowl/pkg/settings"
	"github.com/huynhanx03/chillibowl/pkg/utils"
)

const (
	defaultPort            = 6379
	defaultKeyPrefix       = "chillibowl"
	defaultPoolSize        = 10
	defaultMinIdleConns    = 2
	defaultPoolTimeout     = 5
	defaultDialTimeout     = 5
	defaultReadTimeout     = 3
	defaultWriteTimeout    = 3
	defaultMaxRetries      = 3
	defaultMinRetryBackoff = 300 // millis
	defaultMaxRetryBackoff = 500 // millis
)

// ReceiptStore persists receipts in Redis under three keys:
//
//	<prefix>:receipts  hash of code -> receipt JSON
//	<prefix>:served    list of codes in the order they were recorded
//	<prefix>:items     hash of item -> served count
type ReceiptStore struct {
	client *redisV9.Client
	config *settings.Redis
}

var _ receipt.BatchSink = (*ReceiptStore)(nil)

func (r *ReceiptStore) connect() error {
	r.setDefaultConfig()

	r.client = redisV9.NewClient(&redisV9.Options{
		Addr:            fmt.Sprintf("%s:%d", r.config.Host, r.config.Port),
		Password:        r.config.Password,
		DB:              r.config.Database,
		PoolSize:        r.config.PoolSize,
		MinIdleConns:    r.config.MinIdleConns,
		MaxRetries:      r.config.MaxRetries,
		DialTimeout:     utils.ToDuration(r.config.DialTimeout),
		ReadTimeout:     utils.ToDuration(r.config.ReadTimeout),
		WriteTimeout:    utils.ToDuration(r.config.WriteTimeout),
		PoolTimeout:     utils.ToDuration(r.config.PoolTimeout),
		MinRetryBackoff: utils.ToDurationMs(r.config.MinRetryBackoff),
		MaxRetryBackoff: utils.ToDurationMs(r.config.MaxRetryBackoff),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.client.Ping(ctx).Err(); err != nil {
		_ = r.client.Close()
		return fmt.Errorf("%w: %v", ErrPingFailed, err)
	}

	return nil
}

func (r *ReceiptStore) setDefaultConfig() {
	if r.config.Port == 0 {
		r.config.Port = defaultPort
	}
	if r.config.KeyPrefix == "" {
		r.config.KeyPrefix = defaultKeyPrefix
	}
	if r.config.PoolSize == 0 {
		r.config.PoolSize = defaultPoolSize
	}
	if r.config.MinIdleConns == 0 {
		r.config.MinIdleConns = defaultMinIdleConns
	}
	if r.config.PoolTimeout == 0 {
		r.config.PoolTimeout = defaultPoolTimeout
	}
	if r.config.DialTimeout == 0 {
		r.config.DialTimeout = defaultDialTimeout
	}
	if r.config.ReadTimeout == 0 {
		r.config.ReadTimeout = defaultReadTimeout
	}
	if r.config.WriteTimeout == 0 {
		r.config.WriteTimeout = defaultWriteTimeout
	}
	if r.config.MaxRetries == 0 {
		r.config.MaxRetries = defaultMaxRetries
	}
	if r.config.MinRetryBackoff == 0 {
		r.config.MinRetryBackoff = defaultMinRetryBackoff
	}
	if r.config.MaxRetryBackoff == 0 {
		r.config.MaxRetryBackoff = defaultMaxRetryBackoff
	}
}

func (r *ReceiptStore) receiptsKey() string { return r.config.KeyPrefix + ":receipts" }
func (r *ReceiptStore) servedKey() string   { return r.config.KeyPrefix + ":served" }
func (r *ReceiptStore) itemsKey() string    { return r.config.KeyPrefix + ":items" }

// Record stores rec and bumps its item tally in a single transaction.
func (r *ReceiptStore) Record(ctx context.Context, rec receipt.Receipt) error {
	return r.RecordBatch(ctx, []receipt.Receipt{rec})
}

// RecordBatch stores every receipt in recs in a single transaction.
func (r *ReceiptStore) RecordBatch(ctx context.Context, recs []receipt.Receipt) error {
	if len(recs) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for _, rec := range recs {
		body, err := json.Marshal(rec)
		if err != nil {
			return errors.Wrapf(err, "marshal receipt %s", rec.Code)
		}
		pipe.HSet(ctx, r.receiptsKey(), rec.Code, body)
		pipe.RPush(ctx, r.servedKey(), rec.Code)
		pipe.HIncrBy(ctx, r.itemsKey(), rec.Item, 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "record %d receipts", len(recs))
	}
	return nil
}

// Receipts returns every stored receipt in the order it was recorded.
func (r *ReceiptStore) Receipts(ctx context.Context) ([]receipt.Receipt, error) {
	codes, err := r.client.LRange(ctx, r.servedKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list served codes")
	}
	if len(codes) == 0 {
		return nil, nil
	}

	bodies, err := r.client.HMGet(ctx, r.receiptsKey(), codes...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "load receipts")
	}

	out := make([]receipt.Receipt, 0, len(bodies))
	for i, body := range bodies {
		s, ok := body.(string)
		if !ok {
			return nil, errors.Wrapf(ErrMissingReceipt, "code %s", codes[i])
		}
		var rec receipt.Receipt
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, errors.Wrapf(err, "decode receipt %s", codes[i])
		}
		out = append(out, rec)
	}
	return out, nil
}

// ItemCounts returns how many of each item were served.
func (r *ReceiptStore) ItemCounts(ctx context.Context) (map[string]int, error) {
	raw, err := r.client.HGetAll(ctx, r.itemsKey()).Result()
	if err != nil {
		return nil, errors.Wrap(err, "load item counts")
	}

	out := make(map[string]int, len(raw))
	for item, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "item %s", item)
		}
		out[item] = n
	}
	return out, nil
}

// Reset deletes every key owned by the store.
func (r *ReceiptStore) Reset(ctx context.Context) error {
	return r.client.Del(ctx, r.receiptsKey(), r.servedKey(), r.itemsKey()).Err()
}

// Close closes the Redis client
func (r *ReceiptStore) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Client returns the underlying redis client.
func (r *ReceiptStore) Client() *redisV9.Client {
	return r.client
}
