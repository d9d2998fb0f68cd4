package common

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
)

type Configuration struct {
	Poller Poller
}

type Poller struct {
	Port                   int
	BaseUrl                string
	Username               string
	Password               string
	RefreshIntervalSeconds int
	InfluxDbConfig         InfluxDbConfig
	SqliteConfig           SqliteConfig
	Pushover               PushoverConfig
}

type InfluxDbConfig struct {
	Address  string
	Username string
	Password string
	Database string
}

type SqliteConfig struct {
	Path string
}

type PushoverConfig struct {
	Token string
	User  string
}

const DefaultRefreshIntervalSeconds = 300

var configPath = flag.String("config", "", "The path to the config file")

func LoadConfig() Configuration {
	var path string
	if *configPath == "" {
		path = os.Getenv("HOME") + "/.lubelog_conf.json"
	} else {
		path = *configPath
	}

	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	decoder := json.NewDecoder(f)
	conf := Configuration{}
	err = decoder.Decode(&conf)
	if err != nil {
		panic(err)
	}
	if conf.Poller.RefreshIntervalSeconds == 0 {
		conf.Poller.RefreshIntervalSeconds = DefaultRefreshIntervalSeconds
	}
	return conf
}

// WriteRedacted dumps the config with credentials blanked out.
func (c *Configuration) WriteRedacted(w io.Writer) {
	redacted := *c
	if redacted.Poller.Password != "" {
		redacted.Poller.Password = "<redacted>"
	}
	if redacted.Poller.InfluxDbConfig.Password != "" {
		redacted.Poller.InfluxDbConfig.Password = "<redacted>"
	}
	if redacted.Poller.Pushover.Token != "" {
		redacted.Poller.Pushover.Token = "<redacted>"
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&redacted); err != nil {
		fmt.Fprintf(w, "Cannot encode config: %s", err)
	}
}
