package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyweave/pkg/cache"
	"storyweave/pkg/tracker"
)

func newTestClient() *Client {
	return New(cache.NullCache{}, tracker.New(), 10*time.Second)
}

func TestGet_Sequential(t *testing.T) {
	// Handler sleeps to prove requests to one provider never overlap
	var conc int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&conc, 1)
		defer atomic.AddInt32(&conc, -1)

		if current > 1 {
			t.Errorf("Concurrency detected! Expected sequential.")
		}
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	}))
	defer svr.Close()

	client := newTestClient()

	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, err := client.Get(context.Background(), svr.URL, "")
			if err != nil {
				t.Errorf("Get failed: %v", err)
			}
		}()
	}
	for i := 0; i < 3; i++ {
		<-done
	}
}

func TestGet_Retry(t *testing.T) {
	var attempts int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(429)
			return
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte("success"))
	}))
	defer svr.Close()

	client := newTestClient()

	body, err := client.Get(context.Background(), svr.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "success", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestGet_ClientErrorNotRetried(t *testing.T) {
	var attempts int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(404)
	}))
	defer svr.Close()

	client := newTestClient()

	_, err := client.Get(context.Background(), svr.URL, "")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestGetWithHeaders_SetsUserAgent(t *testing.T) {
	var ua string
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.WriteHeader(200)
	}))
	defer svr.Close()

	client := newTestClient()

	_, err := client.Get(context.Background(), svr.URL, "")
	require.NoError(t, err)
	assert.Contains(t, ua, "StoryWeave/")
}

func TestPostJSON_DefaultsContentType(t *testing.T) {
	var ct string
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer svr.Close()

	client := newTestClient()

	_, err := client.PostJSON(context.Background(), svr.URL, []byte(`{"a":1}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", ct)
}

func TestResolveRedirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer target.Close()

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/final.jpg", http.StatusFound)
	}))
	defer svr.Close()

	client := newTestClient()

	final, err := client.ResolveRedirect(context.Background(), svr.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, target.URL+"/final.jpg", final)
}

func TestNormalizeProvider(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"api.pexels.com", "pexels"},
		{"source.unsplash.com", "unsplash"},
		{"images.unsplash.com", "unsplash"},
		{"generativelanguage.googleapis.com", "gemini"},
		{"api.suno.ai", "suno"},
		{"example.org", "example.org"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeProvider(tt.host), tt.host)
	}
}

func TestGet_Caching(t *testing.T) {
	var hits int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(200)
		_, _ = w.Write([]byte("cached-body"))
	}))
	defer svr.Close()

	c := newMemCache()
	client := New(c, tracker.New(), 10*time.Second)

	body1, err := client.Get(context.Background(), svr.URL, "key1")
	require.NoError(t, err)
	body2, err := client.Get(context.Background(), svr.URL, "key1")
	require.NoError(t, err)

	assert.Equal(t, body1, body2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

// memCache is an in-memory Cacher for tests.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) GetCache(ctx context.Context, key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) SetCache(ctx context.Context, key string, val []byte) error {
	m.data[key] = val
	return nil
}

var _ cache.Cacher = (*memCache)(nil)
