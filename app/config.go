package app

import (
	"fmt"
	"time"

	"wristwx/internal/config"
	"wristwx/wxos/marquee"
	"wristwx/wxos/tasks/phone"

	"github.com/spf13/afero"
)

// FromFile turns a loaded configuration file into a system Config. A phone
// script is read from fs relative to the working directory.
func FromFile(fs afero.Fs, fc config.Config) (Config, error) {
	cfg := DefaultConfig()
	cfg.Debug = fc.Log.Debug

	mc := marquee.DefaultConfig()
	mc.BoundOffset = fc.Marquee.BoundOffset
	mc.Gap = fc.Marquee.Gap
	mc.SettleTicks = fc.Marquee.SettleTicks
	cfg.Marquee = mc
	cfg.TickMillis = uint32(fc.Marquee.TickMillis)

	timeout := time.Duration(fc.Phone.TimeoutMS) * time.Millisecond
	if timeout > 0 {
		cfg.Phone.Timeout = timeout
	}

	switch {
	case fc.Phone.Script != "":
		f, err := fs.Open(fc.Phone.Script)
		if err != nil {
			return cfg, fmt.Errorf("open phone script: %w", err)
		}
		defer f.Close()
		s, err := phone.ParseScript(f)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", fc.Phone.Script, err)
		}
		cfg.Phone.Script = s
		cfg.Phone.Source = nil
		cfg.Phone.Initial = DemoReport
	case fc.Phone.OWMURL != "":
		cfg.Phone.Source = phone.NewOWM(fc.Phone.OWMURL, fc.Phone.Lat, fc.Phone.Lon, cfg.Phone.Timeout)
	}
	return cfg, nil
}
