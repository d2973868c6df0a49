package rotation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-library-be/pkg/llm"
)

// ProviderFunc builds a provider for a specific API key. The model is
// passed per call through llm.WithModel.
type ProviderFunc func(apiKey string) llm.LLMProvider

// Manager walks a (key, model) grid to survive quota exhaustion and
// model outages. Rate-limit errors advance the key, and a full key cycle
// advances the model with the key reset to the front. Model errors
// advance the model directly. Advancing past the last model ends the
// call with the last error; the indexes reset so the next call sweeps
// the grid from the start. Any other error is not recoverable by
// rotation and propagates at once. The rotation state is shared across
// calls so a burned key stays skipped.
type Manager struct {
	mu       sync.Mutex
	keys     []string
	models   []string
	keyIdx   int
	modelIdx int

	newProvider ProviderFunc

	// Pause between rate-limit retries; some providers limit per time
	// window, not per key.
	retryPause time.Duration
}

var _ llm.LLMProvider = (*Manager)(nil)

func NewManager(keys, models []string, newProvider ProviderFunc) (*Manager, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("rotation: at least one api key required")
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("rotation: at least one model required")
	}
	return &Manager{
		keys:        keys,
		models:      models,
		newProvider: newProvider,
		retryPause:  500 * time.Millisecond,
	}, nil
}

// MaxAttempts is the hard ceiling on attempts per call. Rotation
// normally ends sooner: wrapping past the last model gives up after a
// single sweep of the remaining grid.
func (m *Manager) MaxAttempts() int {
	return len(m.keys) * len(m.models) * 2
}

func (m *Manager) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	maxAttempts := m.MaxAttempts()
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key, model := m.current()
		provider := m.newProvider(key)

		out, err := provider.Chat(ctx, history, append(opts, llm.WithModel(model))...)
		if err == nil {
			return out, nil
		}
		lastErr = err

		// Order matters: quota messages can also mention the model.
		switch {
		case llm.IsRateLimited(err):
			if m.advanceKey() {
				return "", fmt.Errorf("all api keys and models exhausted: %w", lastErr)
			}
			if err := m.sleep(ctx); err != nil {
				return "", err
			}
		case llm.IsModelUnavailable(err):
			if m.advanceModel() {
				return "", fmt.Errorf("all api keys and models exhausted: %w", lastErr)
			}
		default:
			// Auth failures and malformed payloads do not get better
			// with a different key or model.
			return "", err
		}
	}

	return "", fmt.Errorf("all api keys and models exhausted after %d attempts: %w", maxAttempts, lastErr)
}

func (m *Manager) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (m *Manager) current() (key, model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[m.keyIdx], m.models[m.modelIdx]
}

// advanceKey moves to the next key, rolling onto the next model when the
// key cycle completes. It reports grid exhaustion: no model left to roll
// onto. On exhaustion both indexes reset for the next call.
func (m *Manager) advanceKey() (exhausted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyIdx++
	if m.keyIdx < len(m.keys) {
		return false
	}
	m.keyIdx = 0
	return m.nextModelLocked()
}

// advanceModel skips the current model entirely and restarts the key
// cycle. It reports grid exhaustion like advanceKey.
func (m *Manager) advanceModel() (exhausted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyIdx = 0
	return m.nextModelLocked()
}

func (m *Manager) nextModelLocked() (exhausted bool) {
	m.modelIdx++
	if m.modelIdx < len(m.models) {
		return false
	}
	m.modelIdx = 0
	return true
}

func (m *Manager) sleep(ctx context.Context) error {
	if m.retryPause <= 0 {
		return nil
	}
	select {
	case <-time.After(m.retryPause):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
