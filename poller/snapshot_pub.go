package poller

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/golang/glog"
	"github.com/kodek/lubelog/common"
	"github.com/kodek/lubelog/poller/lubelog"
)

// NewSnapshotPublisher returns a channel of snapshot batches, one per
// refresh pass. Passes never overlap: each one runs to completion before
// the interval sleep starts. The channel closes when ctx is cancelled.
func NewSnapshotPublisher(ctx context.Context, conf common.Configuration) (<-chan []Snapshot, error) {
	api := lubelog.NewClientFromConfig(conf)
	if err := api.Ping(ctx); err != nil {
		return nil, err
	}

	out := make(chan []Snapshot)
	p := &snapshotPubHelper{
		builder:  NewBuilder(api),
		interval: time.Duration(conf.Poller.RefreshIntervalSeconds) * time.Second,
		out:      out,
	}
	go p.updateIndefinitely(ctx)
	return out, nil
}

type snapshotPubHelper struct {
	builder  *Builder
	interval time.Duration
	out      chan []Snapshot
}

func (p *snapshotPubHelper) updateIndefinitely(ctx context.Context) {
	var batch []Snapshot
	refresh := func() error {
		b, err := p.builder.BuildSnapshots(ctx)
		if err != nil {
			return err
		}
		batch = b
		return nil
	}

	onError := func(e error, d time.Duration) {
		glog.Errorf("Error refreshing snapshots. Retrying in (%s): %s\n", common.Round(d, time.Millisecond), e)
	}

	defer close(p.out)
	for {
		err := backoff.RetryNotify(refresh, backoff.NewExponentialBackOff(), onError)
		if err != nil {
			// A pass that cannot fetch the vehicle list yields an empty
			// batch; absence is not an error to consumers.
			glog.Warningf("Refresh pass failed, publishing empty batch: %s", err)
			batch = []Snapshot{}
		} else {
			glog.Infof("Refreshed %d vehicle snapshots", len(batch))
		}

		select {
		case p.out <- batch:
		case <-ctx.Done():
			glog.Info("Snapshot publisher canceled")
			return
		}

		select {
		case <-time.After(p.interval):
		case <-ctx.Done():
			glog.Info("Snapshot publisher canceled")
			return
		}
	}
}
