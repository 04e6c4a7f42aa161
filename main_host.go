package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"wristwx/app"
	"wristwx/hal"
	"wristwx/internal/buildinfo"
	"wristwx/internal/config"

	"github.com/spf13/afero"
)

const shutdownTimeout = 2 * time.Second

func main() {
	var (
		cfgPath string
		script  string
		dump    bool
		version bool
		debug   bool
		hcfg    hal.HeadlessConfig
	)
	flag.StringVar(&cfgPath, "config", config.DefaultPath, "Path to the TOML configuration file.")
	flag.StringVar(&script, "script", "", "Phone script to play (overrides [phone] script).")
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Step rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N steps in headless mode (0 = run until the app exits).")
	flag.BoolVar(&hcfg.Fixed, "fixed", false, "Advance the clock by exactly 1/hz per headless step.")
	flag.BoolVar(&dump, "dump", false, "Print the last frame to stdout when headless mode stops.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging.")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	fs := afero.NewOsFs()
	fc, err := config.Load(fs, cfgPath)
	if err != nil {
		fail(err)
	}
	if script != "" {
		fc.Phone.Script = script
	}
	if debug {
		fc.Log.Debug = true
	}

	cfg, err := app.FromFile(fs, fc)
	if err != nil {
		fail(err)
	}

	host := hal.HostConfig{Width: fc.Display.Width, Height: fc.Display.Height}

	if !hcfg.Enabled {
		if err := hal.RunWindow(app.Runner(cfg, nil), hal.WindowConfig{Scale: fc.Display.Scale, Host: host}); err != nil {
			fail(err)
		}
		return
	}

	hcfg.Host = host
	if dump {
		hcfg.Dump = os.Stdout
	}
	cfg.ExitOnPanic = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var sys *app.System
	err = hal.RunHeadless(ctx, app.Runner(cfg, func(s *app.System) { sys = s }), hcfg)
	if sys != nil {
		if serr := sys.Shutdown(shutdownTimeout); serr != nil {
			fmt.Fprintln(os.Stderr, serr)
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
