package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager 维护会话 ID 到 Workspace 的映射，并回收长时间空闲的会话。
type Manager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	idleTTL    time.Duration
	now        func() time.Time
	onChange   func(live int)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLiveHook 在会话数量变化时回调，用于上报指标。
func WithLiveHook(fn func(live int)) Option {
	return func(m *Manager) { m.onChange = fn }
}

// NewManager 构造 Manager。idleTTL <= 0 表示永不回收。
func NewManager(idleTTL time.Duration, opts ...Option) *Manager {
	m := &Manager{
		workspaces: make(map[string]*Workspace),
		idleTTL:    idleTTL,
		now:        time.Now,
		onChange:   func(int) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve 返回 id 对应的 Workspace；id 为空或未知时新建一个并返回新 id。
func (m *Manager) Resolve(id string) (string, *Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ws, ok := m.workspaces[id]; ok && id != "" {
		return id, ws, false
	}

	id = uuid.NewString()
	ws := newWorkspace(m.now)
	m.workspaces[id] = ws
	m.onChange(len(m.workspaces))
	return id, ws, true
}

// Len returns the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

// Sweep 删除空闲超过 idleTTL 的会话，连同其条目与图片一起释放，返回删除数量。
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTTL)
	removed := 0
	for id, ws := range m.workspaces {
		if ws.idleSince().Before(cutoff) {
			delete(m.workspaces, id)
			removed++
		}
	}
	if removed > 0 {
		m.onChange(len(m.workspaces))
	}
	return removed
}

// Run 按 interval 周期性执行 Sweep，直到 ctx 结束。
func (m *Manager) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 || m.idleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Info("expired idle workspaces",
					slog.Int("removed", n),
					slog.Int("live", m.Len()),
				)
			}
		}
	}
}
