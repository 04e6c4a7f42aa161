// Command wxcheck validates a wristwx configuration and its phone script
// without starting the watch.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"wristwx/app"
	"wristwx/internal/config"
	"wristwx/wxos/tasks/phone"

	"github.com/spf13/afero"
)

func main() {
	var (
		cfgPath = flag.String("config", config.DefaultPath, "Configuration file to check.")
		script  = flag.String("script", "", "Phone script to check (overrides [phone] script).")
		quiet   = flag.Bool("q", false, "Only report errors.")
	)
	flag.Parse()

	fs := afero.NewOsFs()
	fc, err := config.Load(fs, *cfgPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	if *script != "" {
		fc.Phone.Script = *script
	}
	cfg, err := app.FromFile(fs, fc)
	if err != nil {
		fatalf("%v", err)
	}
	if !*quiet {
		describe(os.Stdout, fc, cfg)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func describe(w io.Writer, fc config.Config, cfg app.Config) {
	fmt.Fprintf(w, "display   %dx%d scale %d\n", fc.Display.Width, fc.Display.Height, fc.Display.Scale)
	fmt.Fprintf(w, "marquee   bound_offset=%d gap=%d settle=%d tick=%dms\n",
		cfg.Marquee.BoundOffset, cfg.Marquee.Gap, cfg.Marquee.SettleTicks, cfg.TickMillis)

	switch src := cfg.Phone.Source.(type) {
	case nil:
		fmt.Fprintf(w, "phone     script %s (%d steps)\n", fc.Phone.Script, len(cfg.Phone.Script.Steps))
		for _, st := range cfg.Phone.Script.Steps {
			fmt.Fprintf(w, "  %4d  %s\n", st.Line, stepArgs(st))
		}
	case *phone.OWM:
		fmt.Fprintf(w, "phone     owm %s lat=%g lon=%g timeout=%s\n", src.BaseURL, src.Lat, src.Lon, cfg.Phone.Timeout)
	case phone.Static:
		fmt.Fprintf(w, "phone     static %q %q icon %d\n", src.City, src.Temperature, src.Icon)
	default:
		fmt.Fprintf(w, "phone     %T\n", src)
	}
}

func stepArgs(st phone.Step) string {
	switch st.Op {
	case phone.OpIcon, phone.OpWait:
		return fmt.Sprintf("%s %d", st.Op, st.Int)
	case phone.OpTemp, phone.OpCity:
		return fmt.Sprintf("%s %q", st.Op, st.Str)
	default:
		return st.Op.String()
	}
}
