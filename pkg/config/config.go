package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/voc/voctozoom/pkg/geometry"
)

const DefaultAddress = "tcp://127.0.0.1:20000"

type Config struct {
	Debug      bool
	// JSONLog switches the console output to JSON lines on stderr.
	JSONLog    bool `fig:"jsonlog"`
	Frame      Frame
	Channels   []Channel
	Refresh    time.Duration `default:"200ms"`
	Zoom       Zoom
	UI         UI
	Remote     Remote
	Screenshot Screenshot
	Monitoring Monitoring
}

// Frame is the resolution every source must report on connect.
type Frame struct {
	Width  int `default:"1280"`
	Height int `default:"720"`
}

func (f Frame) Geometry() geometry.Frame { return geometry.Frame{W: f.Width, H: f.Height} }

type Channel struct {
	Name    string
	Address string
}

type Zoom struct {
	// Step is the wheel zoom-in factor, its reciprocal zooms out.
	Step float64 `default:"0.9"`
}

type UI struct {
	Title string `default:"Voctozoom"`
	// PaneScale divides the frame size to get the size of one pane.
	PaneScale int `default:"2"`
	NoColor   bool
}

type Remote struct {
	ConnectTimeout time.Duration `default:"5s"`
	// FailFast terminates the process on any channel I/O error instead
	// of disabling just that channel.
	FailFast bool
}

type Screenshot struct {
	Folder string `default:"screenshots"`
}

type Monitoring struct {
	Port             int
	URLPrefix        string
	MetricEnabled    bool `fig:"metric_enabled"`
	ProfilingEnabled bool `fig:"profiling_enabled"`
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

// NewConfig loads the configuration and applies command line overrides.
func NewConfig(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("voctozoom", pflag.ContinueOnError)
	path := fs.StringP("conf", "c", "", "Set custom configuration file path")
	debug := fs.Bool("debug", false, "Enable debug logging")
	channels := fs.StringArray("channel", nil, "Video source as [name=]address, repeatable (tcp://host:port, ws://host/path)")
	port := fs.Int("monitoring.port", 0, "Monitoring server port")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	conf, err := Load(*path)
	if err != nil {
		return nil, err
	}
	if fs.Changed("debug") {
		conf.Debug = *debug
	}
	if fs.Changed("monitoring.port") {
		conf.Monitoring.Port = *port
	}
	if len(*channels) > 0 {
		conf.Channels = conf.Channels[:0]
		for _, ch := range *channels {
			conf.Channels = append(conf.Channels, parseChannel(ch))
		}
	}
	conf.fixValues()
	if err = conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func parseChannel(s string) Channel {
	if name, addr, ok := strings.Cut(s, "="); ok {
		return Channel{Name: name, Address: addr}
	}
	return Channel{Address: s}
}

// fixValues fills in what can't be set with defaults.
func (c *Config) fixValues() {
	if len(c.Channels) == 0 {
		c.Channels = []Channel{{Address: DefaultAddress}}
	}
	for i := range c.Channels {
		if c.Channels[i].Name == "" {
			c.Channels[i].Name = fmt.Sprintf("cam%d", i+1)
		}
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		errs = append(errs, fmt.Errorf("bad frame size %vx%v", c.Frame.Width, c.Frame.Height))
	}
	if c.UI.PaneScale <= 0 {
		errs = append(errs, fmt.Errorf("bad pane scale %v", c.UI.PaneScale))
	}
	if c.Zoom.Step <= 0 || c.Zoom.Step >= 1 {
		errs = append(errs, fmt.Errorf("zoom step %v is not in (0, 1)", c.Zoom.Step))
	}
	if c.Refresh <= 0 {
		errs = append(errs, fmt.Errorf("bad refresh interval %v", c.Refresh))
	}
	for _, ch := range c.Channels {
		if ch.Address == "" {
			errs = append(errs, fmt.Errorf("channel %v has no address", ch.Name))
		}
	}
	return errors.Join(errs...)
}
