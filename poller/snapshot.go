// Package poller builds per-vehicle maintenance snapshots from the
// LubeLogger API: one representative record per category per vehicle, fully
// rebuilt on every refresh pass.
package poller

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/kodek/lubelog/poller/clock"
	"github.com/kodek/lubelog/poller/lubelog"
	"github.com/kodek/lubelog/poller/records"
	"github.com/pkg/errors"
)

// Vehicle identifies one vehicle of the LubeLogger account.
type Vehicle struct {
	Id          string         `json:"id"`
	DisplayName string         `json:"name"`
	Info        records.Record `json:"vehicle_info"`
}

// Snapshot holds one vehicle plus the selected record (or nil) per
// category. A snapshot is immutable once built; the next pass replaces it
// wholesale.
type Snapshot struct {
	Timestamp      time.Time      `json:"timestamp"`
	Vehicle        Vehicle        `json:"vehicle"`
	LatestOdometer records.Record `json:"latest_odometer"`
	NextPlan       records.Record `json:"next_plan"`
	LatestTax      records.Record `json:"latest_tax"`
	LatestService  records.Record `json:"latest_service"`
	LatestRepair   records.Record `json:"latest_repair"`
	LatestUpgrade  records.Record `json:"latest_upgrade"`
	LatestSupply   records.Record `json:"latest_supply"`
	LatestGas      records.Record `json:"latest_gas"`
	NextReminder   records.Record `json:"next_reminder"`
}

// Record returns the selected record for a category, nil when the category
// yielded no usable data.
func (s *Snapshot) Record(cat records.Category) records.Record {
	switch cat {
	case records.Odometer:
		return s.LatestOdometer
	case records.Plan:
		return s.NextPlan
	case records.Tax:
		return s.LatestTax
	case records.Service:
		return s.LatestService
	case records.Repair:
		return s.LatestRepair
	case records.Upgrade:
		return s.LatestUpgrade
	case records.Supply:
		return s.LatestSupply
	case records.Gas:
		return s.LatestGas
	case records.Reminder:
		return s.NextReminder
	}
	return nil
}

func (s *Snapshot) setRecord(cat records.Category, rec records.Record) {
	switch cat {
	case records.Odometer:
		s.LatestOdometer = rec
	case records.Plan:
		s.NextPlan = rec
	case records.Tax:
		s.LatestTax = rec
	case records.Service:
		s.LatestService = rec
	case records.Repair:
		s.LatestRepair = rec
	case records.Upgrade:
		s.LatestUpgrade = rec
	case records.Supply:
		s.LatestSupply = rec
	case records.Gas:
		s.LatestGas = rec
	case records.Reminder:
		s.NextReminder = rec
	}
}

// OdometerReading exposes the latest odometer as a normalized number. The
// adjusted-odometer endpoint wraps the reading one level deeper.
func (s *Snapshot) OdometerReading() interface{} {
	rec := s.LatestOdometer
	if rec == nil {
		return nil
	}
	if adjusted, _ := rec.Probe("adjusted"); adjusted == true {
		if inner, ok := rec["odometer"].(map[string]interface{}); ok {
			v, _ := records.Record(inner).Probe("odometer", "Odometer")
			return records.ParseNumber(v)
		}
		v, _ := rec.Probe("odometer")
		return records.ParseNumber(v)
	}
	v, _ := rec.Probe("odometer", "Odometer")
	return records.ParseNumber(v)
}

// FuelEconomy exposes the latest fill-up's consumption figure converted to
// km/l.
func (s *Snapshot) FuelEconomy() interface{} {
	if s.LatestGas == nil {
		return nil
	}
	v, _ := s.LatestGas.Probe("fuelEconomy", "FuelEconomy")
	return records.ConvertFuelEconomy(v)
}

// Cost exposes a category record's cost as a normalized number.
func (s *Snapshot) Cost(cat records.Category) interface{} {
	rec := s.Record(cat)
	if rec == nil {
		return nil
	}
	v, _ := rec.Probe("cost", "Cost")
	return records.ParseNumber(v)
}

// ReminderOverdue reports whether the next reminder is already past due.
func (s *Snapshot) ReminderOverdue() bool {
	if s.NextReminder == nil {
		return false
	}
	urgency, _ := s.NextReminder.ProbeString("urgency", "Urgency")
	if urgency == "PastDue" {
		return true
	}
	for _, keys := range [][]string{{"dueDistance", "DueDistance"}, {"dueDays", "DueDays"}} {
		v, ok := s.NextReminder.Probe(keys...)
		if !ok {
			continue
		}
		switch n := records.ParseNumber(v).(type) {
		case int64:
			if n < 0 {
				return true
			}
		case float64:
			if n < 0 {
				return true
			}
		}
	}
	return false
}

// Builder assembles snapshot batches from the API.
type Builder struct {
	api   lubelog.Client
	clock clock.Clock
}

func NewBuilder(api lubelog.Client) *Builder {
	return &Builder{
		api:   api,
		clock: clock.NewReal(),
	}
}

// BuildSnapshots runs one refresh pass: fetch the vehicle list, then every
// category for every vehicle. A category failure logs a warning and leaves
// that category nil; only a vehicle-list failure fails the pass.
func (b *Builder) BuildSnapshots(ctx context.Context) ([]Snapshot, error) {
	vehicles, err := b.api.Vehicles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot fetch vehicle list")
	}

	snapshots := make([]Snapshot, 0, len(vehicles))
	for _, info := range vehicles {
		id, ok := vehicleId(info)
		if !ok {
			glog.Warningf("Skipping vehicle without an id: %v", info)
			continue
		}
		snap := Snapshot{
			Timestamp: b.clock.Now(),
			Vehicle: Vehicle{
				Id:          id,
				DisplayName: displayName(info, id),
				Info:        info,
			},
		}
		for _, cat := range records.Categories {
			rec, err := b.selectCategory(ctx, cat, id)
			if err != nil {
				glog.Warningf("Error fetching %s for vehicle %s: %s", cat, id, err)
				continue
			}
			snap.setRecord(cat, rec)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

func (b *Builder) selectCategory(ctx context.Context, cat records.Category, vehicleId string) (records.Record, error) {
	if cat == records.Odometer {
		return b.latestOdometer(ctx, vehicleId)
	}
	raw, err := b.api.CategoryRecords(ctx, cat, vehicleId)
	if err != nil {
		return nil, err
	}
	return records.Select(raw, cat), nil
}

// latestOdometer prefers the adjusted-odometer endpoint and falls back to
// picking the highest-id odometer record. An adjusted reading is wrapped so
// consumers can tell the two shapes apart.
func (b *Builder) latestOdometer(ctx context.Context, vehicleId string) (records.Record, error) {
	adjusted, err := b.api.AdjustedOdometer(ctx, vehicleId)
	if err != nil {
		glog.V(1).Infof("Adjusted odometer not available for vehicle %s: %s", vehicleId, err)
	} else if adjusted != nil {
		return records.Record{"odometer": map[string]interface{}(adjusted), "adjusted": true}, nil
	}

	raw, err := b.api.CategoryRecords(ctx, records.Odometer, vehicleId)
	if err != nil {
		return nil, err
	}
	return records.Select(raw, records.Odometer), nil
}

func vehicleId(info records.Record) (string, bool) {
	v, ok := info.Probe("Id", "id")
	if !ok {
		return "", false
	}
	switch id := v.(type) {
	case string:
		return id, true
	case float64:
		return strconv.FormatInt(int64(id), 10), true
	}
	return "", false
}

// displayName derives a vehicle name: year make model, else an explicit
// name field, else a synthesized id-based name.
func displayName(info records.Record, id string) string {
	parts := make([]string, 0, 3)
	for _, keys := range [][]string{{"Year", "year"}, {"Make", "make"}, {"Model", "model"}} {
		v, ok := info.Probe(keys...)
		if !ok {
			continue
		}
		if s := fieldString(v); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if name, ok := info.ProbeString("Name", "name"); ok {
		return name
	}
	return fmt.Sprintf("Vehicle %s", id)
}

func fieldString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}
