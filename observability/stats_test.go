package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonitor_Counters(t *testing.T) {
	req := require.New(t)

	monitor, err := NewMonitor()
	req.NoError(err)

	monitor.ConnAdded()
	monitor.ConnAdded()
	monitor.ConnRemoved()
	monitor.MessageSeen()

	stats, err := monitor.Collect()
	req.NoError(err)

	req.Equal(uint64(1), stats.ConnectedConns)
	req.Equal(uint64(1), stats.MessagesSeen)
	req.Positive(stats.RSSBytes)
	req.Positive(stats.Goroutines)
	req.NotEmpty(stats.PIDStatus)
}
