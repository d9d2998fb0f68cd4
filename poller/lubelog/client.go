// Package lubelog wraps the LubeLogger REST API.
package lubelog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/kodek/lubelog/common"
	"github.com/kodek/lubelog/poller/records"
	"github.com/pkg/errors"
)

const requestTimeout = 10 * time.Second

const (
	vehiclesPath         = "/api/vehicles"
	adjustedOdometerPath = "/api/vehicle/adjustedodometer"
)

// Per-category record list endpoints. The vehicle id goes into the
// vehicleId query parameter.
var categoryPaths = map[records.Category]string{
	records.Odometer: "/api/vehicle/odometerrecords",
	records.Plan:     "/api/vehicle/planrecords",
	records.Tax:      "/api/vehicle/taxrecords",
	records.Service:  "/api/vehicle/servicerecords",
	records.Repair:   "/api/vehicle/repairrecords",
	records.Upgrade:  "/api/vehicle/upgraderecords",
	records.Supply:   "/api/vehicle/supplyrecords",
	records.Gas:      "/api/vehicle/gasrecords",
	records.Reminder: "/api/vehicle/reminders",
}

// ErrInvalidAuth reports that the server rejected the configured
// credentials.
var ErrInvalidAuth = errors.New("lubelog: invalid credentials")

// Client is the fetch capability against one LubeLogger instance. A 404
// from any endpoint means "no data", not an error.
type Client interface {
	// Ping validates connectivity and credentials.
	Ping(ctx context.Context) error
	// Vehicles returns the vehicle list.
	Vehicles(ctx context.Context) ([]records.Record, error)
	// CategoryRecords returns the raw record list of one category for one
	// vehicle. Entries are unfiltered; selection happens in records.Select.
	CategoryRecords(ctx context.Context, cat records.Category, vehicleId string) ([]interface{}, error)
	// AdjustedOdometer returns the adjusted odometer object for a vehicle,
	// or nil when the endpoint has nothing.
	AdjustedOdometer(ctx context.Context, vehicleId string) (records.Record, error)
}

// NewClientFromConfig creates a Client from the server's configuration.
func NewClientFromConfig(conf common.Configuration) Client {
	return NewClient(conf.Poller.BaseUrl, conf.Poller.Username, conf.Poller.Password)
}

func NewClient(baseUrl, username, password string) Client {
	return &httpClient{
		baseUrl:  strings.TrimRight(baseUrl, "/"),
		username: username,
		password: password,
		hc: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type httpClient struct {
	baseUrl  string
	username string
	password string
	hc       *http.Client
}

func (c *httpClient) Ping(ctx context.Context) error {
	_, err := c.fetch(ctx, vehiclesPath, nil)
	return err
}

func (c *httpClient) Vehicles(ctx context.Context) ([]records.Record, error) {
	body, err := c.fetch(ctx, vehiclesPath, nil)
	if err != nil {
		return nil, err
	}
	list, ok := body.([]interface{})
	if !ok {
		glog.Warningf("Vehicle list endpoint returned a non-list response: %T", body)
		return nil, nil
	}
	return records.Filter(list), nil
}

func (c *httpClient) CategoryRecords(ctx context.Context, cat records.Category, vehicleId string) ([]interface{}, error) {
	path, ok := categoryPaths[cat]
	if !ok {
		return nil, errors.New(fmt.Sprintf("no endpoint for category %q", cat))
	}
	body, err := c.fetch(ctx, path, url.Values{"vehicleId": {vehicleId}})
	if err != nil {
		return nil, err
	}
	list, ok := body.([]interface{})
	if !ok {
		// Non-list responses (including text bodies) carry no records.
		return nil, nil
	}
	return list, nil
}

func (c *httpClient) AdjustedOdometer(ctx context.Context, vehicleId string) (records.Record, error) {
	body, err := c.fetch(ctx, adjustedOdometerPath, url.Values{"vehicleId": {vehicleId}})
	if err != nil {
		return nil, err
	}
	if m, ok := body.(map[string]interface{}); ok && len(m) > 0 {
		return records.Record(m), nil
	}
	// Some server versions answer with the bare reading.
	switch body.(type) {
	case float64, string:
		return records.Record{"odometer": body}, nil
	}
	return nil, nil
}

// fetch performs one authenticated GET. It decodes JSON bodies into generic
// values, passes non-JSON bodies through as text, turns 404 into an empty
// list, and fails on every other error status.
func (c *httpClient) fetch(ctx context.Context, path string, query url.Values) (interface{}, error) {
	u := c.baseUrl + path
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build request")
	}
	req = req.WithContext(ctx)
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "cannot reach LubeLogger")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		glog.V(1).Infof("Endpoint not found, treating as no data: %s", u)
		return []interface{}{}, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.Wrap(ErrInvalidAuth, u)
	case resp.StatusCode >= 400:
		return nil, errors.New(fmt.Sprintf("LubeLogger returned %s for %s", resp.Status, u))
	}

	if isJson(resp.Header.Get("Content-Type")) {
		var body interface{}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, errors.Wrap(err, "cannot decode response")
		}
		return body, nil
	}

	text, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read response")
	}
	return string(text), nil
}

func isJson(contentType string) bool {
	return strings.HasPrefix(strings.TrimSpace(contentType), "application/json")
}
