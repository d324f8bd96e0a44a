// Package observability collects technical self-metrics for the debug
// endpoint. No chat data ever flows through here.
package observability

import (
	"os"
	"runtime"
	"sync/atomic"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats aggregates the metrics served by /debug/stats.
type ProcessStats struct {
	RSSBytes       uint64  `json:"rss_bytes"`
	CPUPercent     float64 `json:"cpu_percent"`
	PIDStatus      string  `json:"pid_status"`
	Goroutines     int     `json:"goroutines"`
	ConnectedConns uint64  `json:"connected_conns"`
	MessagesSeen   uint64  `json:"messages_seen"`
}

// Monitor tracks cheap realtime counters and samples process stats on
// demand.
type Monitor struct {
	proc         *process.Process
	connected    uint64
	messagesSeen uint64
}

func NewMonitor() (*Monitor, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &Monitor{proc: p}, nil
}

func (m *Monitor) ConnAdded()   { atomic.AddUint64(&m.connected, 1) }
func (m *Monitor) ConnRemoved() { atomic.AddUint64(&m.connected, ^uint64(0)) }
func (m *Monitor) MessageSeen() { atomic.AddUint64(&m.messagesSeen, 1) }

// Collect samples memory, CPU and scheduler state of this process.
func (m *Monitor) Collect() (ProcessStats, error) {
	memInfo, err := m.proc.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := m.proc.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	status, err := m.proc.Status()
	if err != nil {
		return ProcessStats{}, err
	}

	return ProcessStats{
		RSSBytes:       memInfo.RSS,
		CPUPercent:     cpuPercent,
		PIDStatus:      status,
		Goroutines:     runtime.NumGoroutine(),
		ConnectedConns: atomic.LoadUint64(&m.connected),
		MessagesSeen:   atomic.LoadUint64(&m.messagesSeen),
	}, nil
}
