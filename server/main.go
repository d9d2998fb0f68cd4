package main

import (
	"context"
	"encoding/json"
	_ "expvar"
	"flag"
	"fmt"
	"net/http"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/kodek/lubelog/common"
	"github.com/kodek/lubelog/poller"
	"github.com/kodek/lubelog/poller/databases"
)

func main() {
	_ = flag.Set("logtostderr", "true")
	flag.Parse()

	glog.Info("Loading config")
	conf := common.LoadConfig()

	var push *PushoverFacade
	if conf.Poller.Pushover.Token != "" {
		push = NewPushoverFacade(conf.Poller.Pushover.Token, conf.Poller.Pushover.User)
	}

	sinks := openSinks(conf)
	defer func() {
		for _, db := range sinks {
			if err := db.Close(); err != nil {
				glog.Errorf("Cannot close database: %s", err)
			}
		}
	}()

	updates, err := poller.NewSnapshotPublisher(context.Background(), conf)
	if err != nil {
		glog.Fatalf("Cannot start snapshot publisher: %s", err)
	}

	holder := &snapshotHolder{}
	notifier := newOverdueNotifier(push)
	go func() {
		for batch := range updates {
			glog.V(1).Infof("Received: %s", spew.Sdump(batch))
			holder.set(batch)
			notifier.process(batch)
			for _, db := range sinks {
				if err := db.Insert(context.Background(), batch); err != nil {
					glog.Errorf("Cannot write snapshots to database: %s", err)
				}
			}
		}
	}()

	mux := common.NewKodekMux("LubeLog-Poller")
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		// Redirect to statusz
		http.Redirect(w, r, "/statusz", http.StatusSeeOther)
	})
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) {
		conf.WriteRedacted(w)
	})
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		js, err := json.Marshal(holder.get())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(js)
	})

	if conf.Poller.Port == 0 {
		glog.Fatal("Port 0 currently not supported. Please set config.Poller.Port to continue.")
	}
	listenSpec := fmt.Sprintf(":%d", conf.Poller.Port)
	glog.Infof("Starting LubeLog poller server at %s", listenSpec)
	glog.Fatal(http.ListenAndServe(listenSpec, mux))
}

func openSinks(conf common.Configuration) []databases.Database {
	var sinks []databases.Database
	if influxConf := conf.Poller.InfluxDbConfig; influxConf.Address != "" {
		db, err := databases.OpenInfluxDbDatabase(
			influxConf.Address,
			influxConf.Username,
			influxConf.Password,
			influxConf.Database)
		if err != nil {
			glog.Fatalf("Cannot open InfluxDB: %s", err)
		}
		sinks = append(sinks, db)
	}
	if path := conf.Poller.SqliteConfig.Path; path != "" {
		db, err := databases.OpenSqliteDatabase(path)
		if err != nil {
			glog.Fatalf("Cannot open sqlite database: %s", err)
		}
		sinks = append(sinks, db)
	}
	return sinks
}

// snapshotHolder hands the latest batch to HTTP readers. The publisher
// replaces the value wholesale; readers never mutate it.
type snapshotHolder struct {
	mu    sync.RWMutex
	batch []poller.Snapshot
}

func (h *snapshotHolder) set(batch []poller.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batch = batch
}

func (h *snapshotHolder) get() []poller.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.batch == nil {
		return []poller.Snapshot{}
	}
	return h.batch
}

// overdueNotifier sends one Pushover message per vehicle when its next
// reminder first turns overdue.
type overdueNotifier struct {
	push     *PushoverFacade
	wasAlert map[string]bool
}

func newOverdueNotifier(push *PushoverFacade) *overdueNotifier {
	return &overdueNotifier{
		push:     push,
		wasAlert: make(map[string]bool),
	}
}

func (n *overdueNotifier) process(batch []poller.Snapshot) {
	for _, snap := range batch {
		overdue := snap.ReminderOverdue()
		if overdue && !n.wasAlert[snap.Vehicle.Id] {
			desc, _ := snap.NextReminder.ProbeString("description", "Description")
			glog.Infof("Reminder overdue for %s: %s", snap.Vehicle.DisplayName, desc)
			if n.push != nil {
				_, err := n.push.SendMessageWithTitle(
					desc,
					fmt.Sprintf("Maintenance overdue: %s", snap.Vehicle.DisplayName))
				if err != nil {
					glog.Errorf("Cannot send Pushover message: %s", err)
				}
			}
		}
		n.wasAlert[snap.Vehicle.Id] = overdue
	}
}
