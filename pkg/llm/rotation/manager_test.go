package rotation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"ai-library-be/pkg/llm"
)

type scriptedProvider struct {
	apiKey string
	calls  *[]call
	reply  func(apiKey, model string) (string, error)
}

type call struct {
	apiKey string
	model  string
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}
	*p.calls = append(*p.calls, call{apiKey: p.apiKey, model: options.Model})
	return p.reply(p.apiKey, options.Model)
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func newTestManager(t *testing.T, keys, models []string, calls *[]call, reply func(apiKey, model string) (string, error)) *Manager {
	t.Helper()
	m, err := NewManager(keys, models, func(apiKey string) llm.LLMProvider {
		return &scriptedProvider{apiKey: apiKey, calls: calls, reply: reply}
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.retryPause = 0
	return m
}

func TestManagerSucceedsFirstTry(t *testing.T) {
	var calls []call
	m := newTestManager(t, []string{"k1", "k2"}, []string{"m1"}, &calls, func(_, _ string) (string, error) {
		return "ok", nil
	})

	out, err := m.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "ok" {
		t.Errorf("got %q, want ok", out)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(calls))
	}
	if calls[0].apiKey != "k1" || calls[0].model != "m1" {
		t.Errorf("first call used %+v, want k1/m1", calls[0])
	}
}

func TestManagerRotatesKeyOnRateLimit(t *testing.T) {
	var calls []call
	m := newTestManager(t, []string{"k1", "k2"}, []string{"m1"}, &calls, func(apiKey, _ string) (string, error) {
		if apiKey == "k1" {
			return "", errors.New("status 429: quota exceeded")
		}
		return "ok", nil
	})

	out, err := m.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "ok" {
		t.Errorf("got %q, want ok", out)
	}
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	if calls[1].apiKey != "k2" {
		t.Errorf("second call used key %q, want k2", calls[1].apiKey)
	}
}

func TestManagerRotatesModelOnModelError(t *testing.T) {
	var calls []call
	m := newTestManager(t, []string{"k1", "k2"}, []string{"m1", "m2"}, &calls, func(_, model string) (string, error) {
		if model == "m1" {
			return "", errors.New("model not found")
		}
		return "ok", nil
	})

	out, err := m.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "ok" {
		t.Errorf("got %q, want ok", out)
	}
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	// Model errors jump models and restart at the first key.
	if calls[1].model != "m2" || calls[1].apiKey != "k1" {
		t.Errorf("second call used %+v, want k1/m2", calls[1])
	}
}

func TestManagerKeyWrapAdvancesModel(t *testing.T) {
	var calls []call
	m := newTestManager(t, []string{"k1", "k2"}, []string{"m1", "m2"}, &calls, func(_, model string) (string, error) {
		if model == "m1" {
			return "", errors.New("429 resource exhausted")
		}
		return "ok", nil
	})

	// Both keys fail on m1; the wrap moves to m2 which succeeds.
	out, err := m.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "ok" {
		t.Errorf("got %q, want ok", out)
	}
	if len(calls) != 3 {
		t.Fatalf("got %d calls, want 3", len(calls))
	}
	if calls[2].model != "m2" {
		t.Errorf("third call used model %q, want m2", calls[2].model)
	}
}

func TestManagerGivesUpAfterSingleSweep(t *testing.T) {
	var calls []call
	keys := []string{"k1", "k2", "k3"}
	models := []string{"m1", "m2"}
	m := newTestManager(t, keys, models, &calls, func(_, _ string) (string, error) {
		return "", errors.New("quota exceeded")
	})

	_, err := m.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error when every attempt fails")
	}
	// One pass over the grid, never a second sweep of burned pairs.
	want := len(keys) * len(models)
	if len(calls) != want {
		t.Errorf("got %d calls, want exactly %d", len(calls), want)
	}
	if !strings.Contains(err.Error(), "exhausted") {
		t.Errorf("error %q should mention exhaustion", err)
	}
}

func TestManagerSingleModelErrorPropagates(t *testing.T) {
	var calls []call
	unavailable := errors.New("model not found")
	m := newTestManager(t, []string{"k1"}, []string{"m1"}, &calls, func(_, _ string) (string, error) {
		return "", unavailable
	})

	_, err := m.Generate(context.Background(), "hello")
	if !errors.Is(err, unavailable) {
		t.Fatalf("got %v, want the model error wrapped in the exhaustion error", err)
	}
	if len(calls) != 1 {
		t.Errorf("got %d calls, want 1: no other model exists to rotate to", len(calls))
	}
}

func TestManagerPropagatesFatalErrors(t *testing.T) {
	var calls []call
	fatal := errors.New("invalid api key format")
	m := newTestManager(t, []string{"k1", "k2"}, []string{"m1"}, &calls, func(_, _ string) (string, error) {
		return "", fatal
	})

	_, err := m.Generate(context.Background(), "hello")
	if !errors.Is(err, fatal) {
		t.Fatalf("got %v, want the fatal error unwrapped by rotation", err)
	}
	if len(calls) != 1 {
		t.Errorf("got %d calls, want 1: rotation must not retry fatal errors", len(calls))
	}
}

type countingProvider struct {
	total *atomic.Int64
	reply func(n int64) (string, error)
}

func (p countingProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.reply(p.total.Add(1))
}

func (p countingProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.reply(p.total.Add(1))
}

func TestManagerConcurrentCallers(t *testing.T) {
	var total atomic.Int64
	m, err := NewManager([]string{"k1", "k2"}, []string{"m1", "m2"}, func(string) llm.LLMProvider {
		return countingProvider{total: &total, reply: func(n int64) (string, error) {
			// The first few calls hit the quota so goroutines rotate the
			// shared state while others are mid flight.
			if n <= 3 {
				return "", errors.New("429 quota exceeded")
			}
			return "ok", nil
		}}
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.retryPause = 0

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := m.Generate(context.Background(), "hello")
			if err != nil {
				errs <- err
				return
			}
			if out != "ok" {
				errs <- errors.New("got " + out + ", want ok")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Generate: %v", err)
	}
}

func TestManagerStateSharedAcrossCalls(t *testing.T) {
	var calls []call
	m := newTestManager(t, []string{"k1", "k2"}, []string{"m1"}, &calls, func(apiKey, _ string) (string, error) {
		if apiKey == "k1" {
			return "", errors.New("403 permission denied")
		}
		return "ok", nil
	})

	if _, err := m.Generate(context.Background(), "one"); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	calls = calls[:0]

	// The burned key must stay skipped on the next call.
	if _, err := m.Generate(context.Background(), "two"); err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(calls))
	}
	if calls[0].apiKey != "k2" {
		t.Errorf("second call started on key %q, want k2", calls[0].apiKey)
	}
}
