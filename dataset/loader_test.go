package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoaderFetchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"cve":"CVE-2024-0001"}]`), 0o644))

	l := &Loader{Source: path, Log: zap.NewNop()}
	data, err := l.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"cve":"CVE-2024-0001"}]`, string(data))
}

func TestLoaderFetchFromFileMissing(t *testing.T) {
	l := &Loader{Source: filepath.Join(t.TempDir(), "nope.json"), Log: zap.NewNop()}
	_, err := l.Fetch(context.Background())
	assert.ErrorContains(t, err, "failed to read dataset file")
}

func TestLoaderFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"vulnerabilities":[]}`))
	}))
	defer srv.Close()

	l := &Loader{Source: srv.URL, Timeout: 5 * time.Second, Log: zap.NewNop()}
	data, err := l.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"vulnerabilities":[]}`, string(data))
}

func TestLoaderFetchHTTPRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	l := &Loader{Source: srv.URL, Timeout: 10 * time.Second, Log: zap.NewNop()}
	data, err := l.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestLoaderFetchHTTPGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	l := &Loader{Source: srv.URL, Timeout: 500 * time.Millisecond, Log: zap.NewNop()}
	_, err := l.Fetch(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to fetch dataset")
}
