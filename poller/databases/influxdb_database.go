package databases

import (
	"context"

	"github.com/golang/glog"
	influxdb "github.com/influxdata/influxdb1-client/v2"
	"github.com/kodek/lubelog/poller"
	"github.com/kodek/lubelog/poller/records"
)

type influxDbDatabase struct {
	conn     influxdb.Client
	database string
}

func (this *influxDbDatabase) Insert(ctx context.Context, snapshots []poller.Snapshot) error {
	glog.Infof("Recording %d vehicle snapshots to influxdb", len(snapshots))

	bp, err := influxdb.NewBatchPoints(influxdb.BatchPointsConfig{
		Database:  this.database,
		Precision: "s",
	})
	if err != nil {
		return err
	}

	for _, snap := range snapshots {
		// Indexed tags
		tags := map[string]string{
			"vehicle_id":   snap.Vehicle.Id,
			"vehicle_name": snap.Vehicle.DisplayName,
		}

		fields := map[string]interface{}{}
		if v := snap.OdometerReading(); isNumeric(v) {
			fields["odometer"] = toFloat(v)
		}
		if v := snap.FuelEconomy(); isNumeric(v) {
			fields["fuel_economy_kmpl"] = toFloat(v)
		}
		for _, cat := range []records.Category{records.Tax, records.Service, records.Repair, records.Upgrade, records.Supply, records.Gas} {
			if v := snap.Cost(cat); isNumeric(v) {
				fields[string(cat)+"_cost"] = toFloat(v)
			}
		}
		if len(fields) > 0 {
			point, err := influxdb.NewPoint("maintenance", tags, fields, snap.Timestamp)
			if err != nil {
				return err
			}
			bp.AddPoint(point)
		}

		if rem := snap.NextReminder; rem != nil {
			desc, _ := rem.ProbeString("description", "Description")
			urgency, _ := rem.ProbeString("urgency", "Urgency")
			remFields := map[string]interface{}{
				"description": desc,
				"urgency":     urgency,
				"overdue":     snap.ReminderOverdue(),
			}
			for field, keys := range map[string][]string{
				"due_distance": {"dueDistance", "DueDistance"},
				"due_days":     {"dueDays", "DueDays"},
			} {
				if v, ok := rem.Probe(keys...); ok {
					if n := records.ParseNumber(v); isNumeric(n) {
						remFields[field] = toFloat(n)
					}
				}
			}
			point, err := influxdb.NewPoint("reminder", tags, remFields, snap.Timestamp)
			if err != nil {
				return err
			}
			bp.AddPoint(point)
		}
	}

	err = this.conn.Write(bp)
	if err != nil {
		return err
	}

	glog.Info("Writing to InfluxDB successful")
	return nil
}

func (this *influxDbDatabase) Close() error {
	return this.conn.Close()
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func OpenInfluxDbDatabase(address string, username string, password string, database string) (Database, error) {
	// Create a new HTTPClient
	c, err := influxdb.NewHTTPClient(influxdb.HTTPConfig{
		Addr:     address,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	return &influxDbDatabase{
		conn:     c,
		database: database,
	}, nil
}
