package romi

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/astar.go/pkg/l0/astar"
	"github.com/robotalks/astar.go/pkg/l0/astar/bus/sim"
)

func TestConfigLoad(t *testing.T) {
	testCases := []struct {
		name   string
		yaml   string
		expect func(*Config)
	}{
		{
			"empty keeps defaults",
			"",
			func(*Config) {},
		},
		{
			"overlay",
			"i2c_bus: \"3\"\nmax_speed: 200\ninterval: 50ms\n",
			func(c *Config) {
				c.I2CBus = "3"
				c.MaxSpeed = 200
				c.Interval = 50 * time.Millisecond
			},
		},
		{
			"sim",
			"sim: true\naddress: 0x21\n",
			func(c *Config) {
				c.Sim = true
				c.Address = 0x21
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := *Default()
			expect := conf
			tc.expect(&expect)
			require.NoError(t, conf.Load([]byte(tc.yaml)))
			require.Equal(t, expect, conf)
		})
	}
}

func TestConfigInvalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"syntax", "max_speed: [1"},
		{"address", "address: 200"},
		{"speed", "max_speed: -1"},
		{"interval", "interval: 0s"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := *Default()
			orig := conf
			require.Error(t, conf.Load([]byte(tc.yaml)))
			require.Equal(t, orig, conf, "unchanged on error")
		})
	}
}

func TestConfigLoadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "romi.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("sim: true\nmax_speed: 100\n"), 0644))
	conf := *Default()
	require.NoError(t, conf.LoadFile(fn))
	require.True(t, conf.Sim)

	ctl, err := conf.NewController(nil)
	require.NoError(t, err)
	require.NotNil(t, ctl.Sim)
	require.Equal(t, int16(100), ctl.MaxSpeed)
	require.Equal(t, uint16(astar.DeviceAddress), ctl.Sim.Addr)

	require.Error(t, conf.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestConfigSimAddress(t *testing.T) {
	conf := *Default()
	conf.Sim = true
	conf.Address = 0x21
	bus, err := conf.OpenBus()
	require.NoError(t, err)
	require.Equal(t, uint16(0x21), bus.(*sim.Device).Addr)
}
