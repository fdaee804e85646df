package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strrl/session-resume/pkg/models"
)

// PreviewResult carries one finished preview load.
type PreviewResult struct {
	Name  string
	Lines []string
	Err   error
}

// directoriesResult pairs the stats result with its error for channel
// delivery.
type directoriesResult struct {
	dirs []models.Directory
	err  error
}

// FetchDirectoriesWithStatsAsync runs the DuckDB stats query without
// blocking the caller past ctx.
func FetchDirectoriesWithStatsAsync(ctx context.Context) ([]models.Directory, error) {
	resultChan := make(chan directoriesResult, 1)

	go func() {
		dirs, err := FetchDirectoriesWithStats()
		resultChan <- directoriesResult{dirs: dirs, err: err}
	}()

	select {
	case result := <-resultChan:
		return result.dirs, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Executor runs preview loads in the background with per-request
// cancellation, so the TUI can abandon a load when the cursor moves on.
type Executor struct {
	mu        sync.RWMutex
	contexts  map[string]context.CancelFunc
	closed    bool
	closeOnce sync.Once
}

// NewExecutor creates a new preview executor.
func NewExecutor() *Executor {
	return &Executor{
		contexts: make(map[string]context.CancelFunc),
	}
}

// FetchPreview starts loading a session preview. It returns the request
// ID for cancellation and a channel delivering exactly one result,
// unless the request is cancelled first.
func (e *Executor) FetchPreview(ctx context.Context, name string) (string, <-chan PreviewResult) {
	resultChan := make(chan PreviewResult, 1)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(resultChan)
		return "", resultChan
	}
	requestID := uuid.New().String()
	reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	e.contexts[requestID] = cancel
	e.mu.Unlock()

	go func() {
		defer close(resultChan)
		defer func() {
			cancel()
			e.mu.Lock()
			delete(e.contexts, requestID)
			e.mu.Unlock()
		}()

		lines, err := FetchSessionPreview(name)
		if reqCtx.Err() != nil {
			// Cancelled; nobody is listening for this result.
			return
		}

		select {
		case resultChan <- PreviewResult{Name: name, Lines: lines, Err: err}:
		case <-reqCtx.Done():
		}
	}()

	return requestID, resultChan
}

// Cancel cancels a specific request.
func (e *Executor) Cancel(requestID string) {
	e.mu.RLock()
	cancel, ok := e.contexts[requestID]
	e.mu.RUnlock()

	if ok {
		cancel()
	}
}

// CancelAll cancels all active requests.
func (e *Executor) CancelAll() {
	e.mu.RLock()
	cancels := make([]context.CancelFunc, 0, len(e.contexts))
	for _, cancel := range e.contexts {
		cancels = append(cancels, cancel)
	}
	e.mu.RUnlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Close shuts down the executor and cancels everything in flight.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		for _, cancel := range e.contexts {
			cancel()
		}
		e.mu.Unlock()
	})
}
