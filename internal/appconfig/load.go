package appconfig

import (
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the YAML file at path over the built-in
// defaults, then applies PALETTE_* environment overrides. An empty path
// skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("canvas.width", cfg.Canvas.Width)
	v.SetDefault("canvas.height", cfg.Canvas.Height)
	v.SetDefault("canvas.background", cfg.Canvas.Background)
	v.SetDefault("brush.color", cfg.Brush.Color)
	v.SetDefault("brush.size", cfg.Brush.Size)
	v.SetDefault("brush.opacity", cfg.Brush.Opacity)
	v.SetDefault("brush.type", cfg.Brush.Type)
	v.SetDefault("symmetry", cfg.Symmetry)
	v.SetDefault("history.capacity", cfg.History.Capacity)
	v.SetDefault("recording.fps", cfg.Recording.FPS)
	v.SetDefault("recording.encoder", cfg.Recording.Encoder)
	v.SetDefault("recording.output", cfg.Recording.Output)
	v.SetDefault("recording.scope", cfg.Recording.Scope)
	v.SetDefault("export.path", cfg.Export.Path)
	v.SetDefault("journal.path", cfg.Journal.Path)
	v.SetDefault("log.level", cfg.Log.Level)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
