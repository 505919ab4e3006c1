// Package dataset owns the session lifecycle of the vulnerability
// dataset: the one-shot load, the immutable base sequence, the cached
// metrics, and the guarded derived views.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rawCacheKey = "vulnview:dataset:raw"

// Loader retrieves the raw dataset document from an http(s) URL or a
// local file path. HTTP fetches retry with exponential backoff and the
// raw bytes may be cached in Redis between restarts.
type Loader struct {
	Source  string
	Timeout time.Duration
	Client  *http.Client

	Redis    *redis.Client
	RedisTTL time.Duration

	Log *zap.Logger
}

// Fetch returns the raw dataset bytes. The cache is consulted first;
// fetch failures after the retry budget are returned to the caller.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(l.Source, "http://") && !strings.HasPrefix(l.Source, "https://") {
		data, err := os.ReadFile(l.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset file: %w", err)
		}
		return data, nil
	}

	if cached := l.cacheGet(ctx); cached != nil {
		l.Log.Info("dataset served from cache", zap.Int("bytes", len(cached)))
		return cached, nil
	}

	var data []byte

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = l.Timeout

	err := backoff.RetryNotify(func() error {
		var err error
		data, err = l.fetchOnce(ctx)
		return err
	}, backoff.WithContext(bo, ctx), func(err error, _ time.Duration) {
		l.Log.Warn("retrying dataset fetch", zap.String("source", l.Source), zap.Error(err))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset from %s: %w", l.Source, err)
	}

	l.cacheSet(ctx, data)
	return data, nil
}

func (l *Loader) fetchOnce(ctx context.Context) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: l.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (l *Loader) cacheGet(ctx context.Context) []byte {
	if l.Redis == nil {
		return nil
	}
	data, err := l.Redis.Get(ctx, rawCacheKey).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (l *Loader) cacheSet(ctx context.Context, data []byte) {
	if l.Redis == nil {
		return
	}
	if err := l.Redis.Set(ctx, rawCacheKey, data, l.RedisTTL).Err(); err != nil {
		l.Log.Warn("failed to cache dataset", zap.Error(err))
	}
}
