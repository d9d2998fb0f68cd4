package databases

import (
	"context"

	"github.com/kodek/lubelog/poller"
)

// Database is a write-only sink for snapshot batches. Sinks export derived
// values; they are never read back during a refresh pass.
type Database interface {
	Insert(ctx context.Context, snapshots []poller.Snapshot) error

	Close() error
}
