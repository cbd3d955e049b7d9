package observability

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"pizza-bot/domain"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

const recentTurnsLimit = 20

// RecentTurnInfo is one answered message as shown by /stats
type RecentTurnInfo struct {
	ID          string  `json:"id"`
	Intent      string  `json:"intent"`
	Probability float64 `json:"probability"`
	Language    string  `json:"language"`
	Timestamp   string  `json:"timestamp"`
}

type ProcessStats struct {
	PID        int32   `json:"pid"`
	Status     string  `json:"status"`
	CPUPercent float64 `json:"cpu_percent"`
	RSSBytes   uint64  `json:"rss_bytes"`
}

// MonitoringStats aggregates the responder counters and the process health.
type MonitoringStats struct {
	Turns           uint64            `json:"turns"`
	Sentences       uint64            `json:"sentences"`
	OrdersConfirmed uint64            `json:"orders_confirmed"`
	KeywordHits     uint64            `json:"keyword_hits"`
	UnknownTurns    uint64            `json:"unknown_turns"`
	Intents         map[string]uint64 `json:"intents"`
	RecentTurns     []RecentTurnInfo  `json:"recent_turns"`

	Process    ProcessStats `json:"process"`
	AllocMemMb uint64       `json:"alloc_mem_mb"`
	NumGC      uint32       `json:"num_gc"`
	UptimeSec  float64      `json:"uptime_sec"`
}

type MonitoringManager struct {
	log       *slog.Logger
	startedAt time.Time

	turns           atomic.Uint64
	sentences       atomic.Uint64
	ordersConfirmed atomic.Uint64
	keywordHits     atomic.Uint64
	unknownTurns    atomic.Uint64

	mu          sync.RWMutex
	intents     map[string]uint64
	recentTurns []RecentTurnInfo
	process     ProcessStats
	allocMemMb  uint64
	numGC       uint32
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{
		log:         log,
		startedAt:   time.Now(),
		intents:     make(map[string]uint64),
		recentTurns: make([]RecentTurnInfo, 0, recentTurnsLimit),
	}
}

// Record accounts for one answered message. Safe for concurrent use.
func (mm *MonitoringManager) Record(turn domain.Turn) {
	mm.turns.Add(1)
	mm.sentences.Add(uint64(len(turn.Sentences)))
	if turn.OrderConfirmed {
		mm.ordersConfirmed.Add(1)
	}
	if turn.Intent == domain.IntentUnknown {
		mm.unknownTurns.Add(1)
	}
	for _, s := range turn.Sentences {
		if s.Classification.Source == domain.SourceKeyword {
			mm.keywordHits.Add(1)
		}
	}

	info := RecentTurnInfo{
		ID:          turn.ID.String(),
		Intent:      turn.Intent,
		Probability: turn.Probability(),
		Language:    turn.Language,
		Timestamp:   time.Now().Format("15:04:05"),
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.intents[turn.Intent]++
	mm.recentTurns = append([]RecentTurnInfo{info}, mm.recentTurns...)
	if len(mm.recentTurns) > recentTurnsLimit {
		mm.recentTurns = mm.recentTurns[:recentTurnsLimit]
	}
}

// Listen refreshes the process metrics every interval until ctx is done.
func (mm *MonitoringManager) Listen(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		mm.log.Warn("Process metrics unavailable", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			mm.log.Info("Monitoring manager stopped")
			return
		case <-ticker.C:
			mm.updateStats(p)
		}
	}
}

func (mm *MonitoringManager) updateStats(p *process.Process) {
	var ps ProcessStats
	if p != nil {
		ps.PID = p.Pid
		if memInfo, err := p.MemoryInfo(); err == nil {
			ps.RSSBytes = memInfo.RSS
		}
		if cpu, err := p.CPUPercent(); err == nil {
			ps.CPUPercent = cpu
		}
		if status, err := p.Status(); err == nil {
			ps.Status = status
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mm.mu.Lock()
	mm.process = ps
	mm.allocMemMb = m.Alloc / 1024 / 1024
	mm.numGC = m.NumGC
	mm.mu.Unlock()

	mm.log.Debug("Stats updated",
		"turns", mm.turns.Load(),
		"cpu", ps.CPUPercent,
		"rss", ps.RSSBytes,
		"mem_mb", m.Alloc/1024/1024)
}

// GetLatest returns a snapshot that the caller may keep and modify.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	return MonitoringStats{
		Turns:           mm.turns.Load(),
		Sentences:       mm.sentences.Load(),
		OrdersConfirmed: mm.ordersConfirmed.Load(),
		KeywordHits:     mm.keywordHits.Load(),
		UnknownTurns:    mm.unknownTurns.Load(),
		Intents:         maps.Clone(mm.intents),
		RecentTurns:     append([]RecentTurnInfo(nil), mm.recentTurns...),
		Process:         mm.process,
		AllocMemMb:      mm.allocMemMb,
		NumGC:           mm.numGC,
		UptimeSec:       time.Since(mm.startedAt).Seconds(),
	}
}
