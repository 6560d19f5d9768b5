// Command tetrad plays the game in a desktop window or a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/plus3/tetrad/config"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp(play).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(action func(config.Config) error) *cli.App {
	app := cli.NewApp()
	app.Name = "tetrad"
	app.Usage = "falling-block puzzle game"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "YAML settings `FILE`"},
		cli.Uint64Flag{Name: "seed", Usage: "shape randomizer seed (0 seeds from the clock)"},
		cli.StringFlag{Name: "mode", Usage: "display mode: window or tui"},
		cli.IntFlag{Name: "tick-rate", Usage: "engine ticks per second"},
		cli.IntFlag{Name: "scale", Usage: "window pixels per cell"},
		cli.BoolFlag{Name: "mute", Usage: "start with sound effects muted"},
		cli.BoolFlag{Name: "no-music", Usage: "do not play background music"},
		cli.BoolFlag{Name: "no-anims", Usage: "start with drop animations off"},
		cli.BoolFlag{Name: "debug-ui", Usage: "show the ImGui debug overlay (window mode)"},
		cli.StringFlag{Name: "log-level", Usage: "panic, fatal, error, warn, info, debug or trace"},
		cli.StringFlag{Name: "log-format", Usage: "text or json"},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		return action(cfg)
	}
	return app
}

// loadConfig reads the settings file if one is given, then applies flags
// that were set on the command line.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("mode") {
		cfg.Display.Mode = c.String("mode")
	}
	if c.IsSet("tick-rate") {
		cfg.TickRate = c.Int("tick-rate")
	}
	if c.IsSet("scale") {
		cfg.Display.Scale = c.Int("scale")
	}
	if c.Bool("mute") {
		cfg.Audio.Muted = true
	}
	if c.Bool("no-music") {
		cfg.Audio.Music = false
	}
	if c.Bool("no-anims") {
		cfg.Display.Animations = false
	}
	if c.Bool("debug-ui") {
		cfg.Display.DebugUI = true
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	return cfg, cfg.Validate()
}
