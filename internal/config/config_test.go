package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), DefaultPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `
[marquee]
gap = 12
settle_ticks = 40

[phone]
script = "demo.wx"
lat = 59.9
`
	if err := afero.WriteFile(fs, "wx.toml", []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs, "wx.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Marquee.Gap = 12
	want.Marquee.SettleTicks = 40
	want.Phone.Script = "demo.wx"
	want.Phone.Lat = 59.9
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "wx.toml", []byte("[marquee]\ntick_ms = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fs, "wx.toml"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "wx.toml", []byte("[marquee\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fs, "wx.toml"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := Default()
	cfg.Display.Scale = 4
	cfg.Log.Debug = true
	if err := Save(fs, "out.toml", cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(fs, "out.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}
