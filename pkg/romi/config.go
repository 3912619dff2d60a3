package romi

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l0/astar"
	"github.com/robotalks/astar.go/pkg/l0/astar/bus/periph"
	"github.com/robotalks/astar.go/pkg/l0/astar/bus/sim"
	"github.com/robotalks/astar.go/pkg/l1"
)

// DefaultMaxSpeed is the motor speed limit accepted by the firmware.
const DefaultMaxSpeed = 300

// Config defines the configurations for the controller.
type Config struct {
	// I2CBus is the periph.io name of the I2C bus, e.g. "1".
	I2CBus string `yaml:"i2c_bus"`
	// Address is the I2C address of the A-Star.
	Address uint16 `yaml:"address"`
	// Sim uses the simulated A-Star instead of the I2C bus.
	Sim bool `yaml:"sim"`
	// MaxSpeed clamps motor speeds.
	MaxSpeed int `yaml:"max_speed"`
	// Interval is the sensing interval of the loop.
	Interval time.Duration `yaml:"interval"`
}

var (
	defaultConfig = Config{
		I2CBus:   periph.DefaultBusName,
		Address:  astar.DeviceAddress,
		MaxSpeed: DefaultMaxSpeed,
		Interval: fx.DefaultInterval,
	}
	configFile string
)

func init() {
	if val := os.Getenv("ROMI_I2C_BUS"); val != "" {
		defaultConfig.I2CBus = val
	}
	if val := os.Getenv("ROMI_CONFIG"); val != "" {
		configFile = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configFile, "config", configFile, "YAML config file, overrides flags.")
	flag.StringVar(&defaultConfig.I2CBus, "i2c", defaultConfig.I2CBus, "I2C bus name.")
	flag.Func("addr", fmt.Sprintf("I2C address of A-Star (default %d).", defaultConfig.Address), func(s string) error {
		var addr uint16
		if _, err := fmt.Sscan(s, &addr); err != nil {
			return err
		}
		defaultConfig.Address = addr
		return nil
	})
	flag.BoolVar(&defaultConfig.Sim, "sim", defaultConfig.Sim, "Use simulated A-Star.")
	flag.IntVar(&defaultConfig.MaxSpeed, "max-speed", defaultConfig.MaxSpeed, "Motor speed limit.")
	flag.DurationVar(&defaultConfig.Interval, "interval", defaultConfig.Interval, "Sensing interval.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults, overlaid by the config
// file if specified.
func NewConfig() (*Config, error) {
	conf := defaultConfig
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

// MustNewConfig creates a config or exits.
func MustNewConfig() *Config {
	conf, err := NewConfig()
	if err != nil {
		glog.Exit(err)
	}
	return conf
}

// LoadFile overlays the config with values from a YAML file.
// Keys absent in the file keep their current values.
func (c *Config) LoadFile(fn string) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.Load(data)
}

// Load overlays the config with YAML.
func (c *Config) Load(data []byte) error {
	conf := *c
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	*c = conf
	return nil
}

// Validate checks the values.
func (c *Config) Validate() error {
	if c.Address == 0 || c.Address > 0x7f {
		return fmt.Errorf("invalid I2C address %d", c.Address)
	}
	if c.MaxSpeed <= 0 || c.MaxSpeed > 0x7fff {
		return fmt.Errorf("invalid max speed %d", c.MaxSpeed)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("invalid interval %s", c.Interval)
	}
	return nil
}

// OpenBus opens the I2C bus or creates the simulated device.
func (c *Config) OpenBus() (astar.Bus, error) {
	if c.Sim {
		dev := sim.New()
		dev.Addr = c.Address
		return dev, nil
	}
	return periph.Open(c.I2CBus)
}

// NewController opens the bus and creates a controller reporting
// to the registrar.
func (c *Config) NewController(reg l1.Registrar) (*Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bus, err := c.OpenBus()
	if err != nil {
		return nil, err
	}
	engine := astar.NewEngine(bus)
	engine.Addr = c.Address
	ctl := NewController(astar.NewWithEngine(engine), reg)
	ctl.MaxSpeed = int16(c.MaxSpeed)
	if dev, ok := bus.(*sim.Device); ok {
		ctl.Sim = dev
	}
	return ctl, nil
}
