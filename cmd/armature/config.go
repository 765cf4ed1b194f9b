package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config holds the defaults for new animations. Values come from flags,
// ARMATURE_* environment variables or an .armature.yaml file, in that order.
type config struct {
	FPS    float64
	Frames int
	Loop   bool
}

func bindConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("fps", 15, "frame rate of new animations")
	cmd.Flags().Int("frames", 1, "frame count of new animations")
	cmd.Flags().Bool("loop", true, "whether new animations loop")
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()
	v.SetDefault("fps", 15.0)
	v.SetDefault("frames", 1)
	v.SetDefault("loop", true)
	v.SetConfigName(".armature") // .yaml is implicit
	v.SetEnvPrefix("ARMATURE")
	v.AutomaticEnv()

	if override := os.Getenv("ARMATURE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	for _, name := range []string{"fps", "frames", "loop"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return nil, err
			}
		}
	}

	cfg := &config{
		FPS:    v.GetFloat64("fps"),
		Frames: v.GetInt("frames"),
		Loop:   v.GetBool("loop"),
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %g", cfg.FPS)
	}
	if cfg.Frames < 1 {
		return nil, fmt.Errorf("frames must be at least 1, got %d", cfg.Frames)
	}
	return cfg, nil
}
