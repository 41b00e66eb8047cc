package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ironsheep/slime-finder/internal/report"
)

// ReportConfig selects where accepted clusters are sent.
type ReportConfig struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint,omitempty"`   // HTTP collector
	Websocket string `yaml:"websocket" json:"websocket,omitempty"` // ws:// or wss:// collector
	Timeout   string `yaml:"timeout" json:"timeout"`
	Async     bool   `yaml:"async" json:"async"`
	QueueSize int    `yaml:"queue_size" json:"queue_size"`
	Console   bool   `yaml:"console" json:"console"`
}

// DefaultReportConfig prints to the console only.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Timeout:   report.DefaultTimeout.String(),
		QueueSize: 64,
		Console:   true,
	}
}

// TimeoutDuration returns the parsed timeout, or report.DefaultTimeout when
// unset or unparsable.
func (c ReportConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return report.DefaultTimeout
	}
	return d
}

func (c ReportConfig) validate() []error {
	var errs []error
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("report: timeout %q is not a positive duration", c.Timeout))
		}
	}
	if c.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("report: queue size must be positive, got %d", c.QueueSize))
	}
	if c.Endpoint != "" {
		if u, err := url.Parse(c.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("report: endpoint %q is not an http(s) URL", c.Endpoint))
		}
	}
	if c.Websocket != "" {
		if u, err := url.Parse(c.Websocket); err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
			errs = append(errs, fmt.Errorf("report: websocket %q is not a ws(s) URL", c.Websocket))
		}
	}
	return errs
}
