package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"icebreak/internal/cache"
	"icebreak/internal/llm"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// fakeCompleter answers every call with the same text or error
type fakeCompleter struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	last  llm.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{
		Text:  f.text,
		Usage: llm.Usage{PromptTokens: 10, CompletionTokens: 20},
	}, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newHistoryCache(t *testing.T) cache.HistoryCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewHistoryCache(client, time.Hour, 50)
}

func newLibraryCache(t *testing.T) cache.LibraryCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewLibraryCache(client, time.Hour)
}
