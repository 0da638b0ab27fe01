package viewmodel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dormhub/internal/client"
	"dormhub/pkg/logger"

	"github.com/robfig/cron/v3"
)

// DefaultStatsInterval 统计面板默认刷新间隔
const DefaultStatsInterval = 5 * time.Second

// StatsAPI 统计接口
type StatsAPI interface {
	RoomStatistics(ctx context.Context, sess client.Session) (*client.Statistics, error)
}

// Snapshot 一次刷新的结果
type Snapshot struct {
	Stats       client.Statistics
	Percentages client.Percentages
	FetchedAt   time.Time
	Err         error
}

// Dashboard 固定间隔轮询房间统计；刷新与其它操作互不协调，后写入者生效
type Dashboard struct {
	api      StatsAPI
	sessions SessionSource
	interval time.Duration
	timeout  time.Duration

	mu       sync.RWMutex
	latest   Snapshot
	loaded   bool
	cron     *cron.Cron
	onUpdate func(Snapshot)
}

// NewDashboard 创建统计面板，interval <= 0 时使用默认值
func NewDashboard(api StatsAPI, sessions SessionSource, interval time.Duration) *Dashboard {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &Dashboard{
		api:      api,
		sessions: sessions,
		interval: interval,
		timeout:  client.DefaultTimeout,
	}
}

// OnUpdate 注册刷新回调，在轮询goroutine中调用
func (d *Dashboard) OnUpdate(fn func(Snapshot)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onUpdate = fn
}

// Refresh 立即刷新一次。失败时保留上一次的统计，只更新错误
func (d *Dashboard) Refresh(ctx context.Context) (Snapshot, error) {
	stats, err := d.api.RoomStatistics(ctx, d.sessions.Session())

	d.mu.Lock()
	if err != nil {
		d.latest.Err = err
	} else {
		d.latest = Snapshot{
			Stats:       *stats,
			Percentages: stats.Percentages(),
			FetchedAt:   time.Now(),
		}
		d.loaded = true
	}
	snap := d.latest
	fn := d.onUpdate
	d.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap, err
}

// Latest 最近一次结果，ok 表示至少成功刷新过一次
func (d *Dashboard) Latest() (Snapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest, d.loaded
}

// Start 立即刷新一次并开始定时轮询
func (d *Dashboard) Start() error {
	d.mu.Lock()
	if d.cron != nil {
		d.mu.Unlock()
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", d.interval), d.tick)
	if err != nil {
		d.mu.Unlock()
		return fmt.Errorf("schedule statistics refresh: %w", err)
	}
	d.cron = c
	d.mu.Unlock()

	d.tick()
	c.Start()
	return nil
}

// Stop 停止轮询并等待正在进行的刷新结束
func (d *Dashboard) Stop() {
	d.mu.Lock()
	c := d.cron
	d.cron = nil
	d.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func (d *Dashboard) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if _, err := d.Refresh(ctx); err != nil {
		logger.GetLogger().WithError(err).Debug("Statistics refresh failed")
	}
}
