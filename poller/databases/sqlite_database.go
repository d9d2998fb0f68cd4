package databases

import (
	"context"
	"database/sql"

	"github.com/golang/glog"
	"github.com/kodek/lubelog/poller"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type sqliteDatabase struct {
	conn *sql.DB
}

// OpenSqliteDatabase opens (and if needed initializes) an append-only
// snapshot summary table.
func OpenSqliteDatabase(path string) (Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &sqliteDatabase{
		conn: db,
	}, nil
}

func createTables(conn *sql.DB) error {
	sqlStmt := `
	create table if not exists SNAPSHOT (
	  timestamp integer not null,
	  vehicle_id text not null,
	  vehicle_name text,
	  odometer real,
	  fuel_economy_kmpl real,
	  reminder_overdue integer,
	  primary key (timestamp, vehicle_id));
	`
	_, err := conn.Exec(sqlStmt)
	return err
}

func (db *sqliteDatabase) Insert(ctx context.Context, snapshots []poller.Snapshot) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("insert or replace into SNAPSHOT(timestamp, vehicle_id, vehicle_name, odometer, fuel_economy_kmpl, reminder_overdue) values(?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		_, err = stmt.ExecContext(ctx,
			snap.Timestamp.Unix(),
			snap.Vehicle.Id,
			snap.Vehicle.DisplayName,
			nullableFloat(snap.OdometerReading()),
			nullableFloat(snap.FuelEconomy()),
			snap.ReminderOverdue())
		if err != nil {
			tx.Rollback()
			return errors.Wrap(err, "cannot write snapshot row")
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	glog.Infof("Saved %d snapshot rows into sqlite.", len(snapshots))
	return nil
}

func (db *sqliteDatabase) Close() error {
	return db.conn.Close()
}

func nullableFloat(v interface{}) interface{} {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return nil
}
