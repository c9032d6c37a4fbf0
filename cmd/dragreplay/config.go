package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/draggable"
)

// config mirrors draggable.Options for file, flag and environment input.
type config struct {
	DraggableDataAttr   string    `mapstructure:"draggable_data_attr"`
	BucketDataAttr      string    `mapstructure:"bucket_data_attr"`
	BucketQuerySelector string    `mapstructure:"bucket_query_selector"`
	PlaceholderID       string    `mapstructure:"placeholder_id"`
	Offsets             offsets   `mapstructure:"offsets"`
	Threshold           float64   `mapstructure:"threshold"`
	ReleaseMode         string    `mapstructure:"release_mode"`
	BoundsAttr          string    `mapstructure:"bounds_attr"`
	Width               float64   `mapstructure:"width"`
	Height              float64   `mapstructure:"height"`
	Follow              bool      `mapstructure:"follow"`
	Log                 logConfig `mapstructure:"log"`
}

type offsets struct {
	Mouse vec `mapstructure:"mouse"`
	Touch vec `mapstructure:"touch"`
}

type vec struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("draggable_data_attr", "draggableId")
	v.SetDefault("bucket_data_attr", "bucketId")
	v.SetDefault("placeholder_id", "drag-placeholder")
	v.SetDefault("release_mode", "faithful")
	v.SetDefault("bounds_attr", "data-bounds")
	v.SetDefault("width", 1024)
	v.SetDefault("height", 768)
	v.SetDefault("follow", true)
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
}

// loadConfig reads an optional config file plus DRAGREPLAY_* environment
// variables into a config.
func loadConfig(v *viper.Viper, file string) (config, error) {
	setDefaults(v)
	v.SetEnvPrefix("DRAGREPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

var errReleaseMode = errors.New("release_mode must be \"faithful\" or \"after-drag\"")

func (c config) releaseMode() (draggable.ReleaseMode, error) {
	switch c.ReleaseMode {
	case "", "faithful":
		return draggable.ReleaseFaithful, nil
	case "after-drag":
		return draggable.ReleaseAfterDrag, nil
	default:
		return 0, fmt.Errorf("%w, got %q", errReleaseMode, c.ReleaseMode)
	}
}

// options converts the config into engine options. Callbacks, document and
// logger are filled in by the caller.
func (c config) options() (draggable.Options, error) {
	mode, err := c.releaseMode()
	if err != nil {
		return draggable.Options{}, err
	}
	return draggable.Options{
		DraggableDataAttr:   c.DraggableDataAttr,
		BucketDataAttr:      c.BucketDataAttr,
		BucketQuerySelector: c.BucketQuerySelector,
		PlaceholderID:       c.PlaceholderID,
		Offsets: draggable.Offsets{
			Mouse: draggable.Vec2{X: c.Offsets.Mouse.X, Y: c.Offsets.Mouse.Y},
			Touch: draggable.Vec2{X: c.Offsets.Touch.X, Y: c.Offsets.Touch.Y},
		},
		Threshold:   c.Threshold,
		ReleaseMode: mode,
	}, nil
}
