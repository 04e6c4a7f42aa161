// Package weather is the watch app: an icon, the temperature and the city
// name, scrolled when it is too long for the screen.
package weather

import (
	"fmt"
	"image"
	"image/color"

	"wristwx/hal"
	logclient "wristwx/wxos/client/logger"
	timeclient "wristwx/wxos/client/time"
	"wristwx/wxos/fonts"
	"wristwx/wxos/kernel"
	"wristwx/wxos/marquee"
	"wristwx/wxos/proto"
	"wristwx/wxos/ui"
)

const marqueeTimerID = 1

// Screen layout.
var (
	iconFrame        = image.Rect(32, 10, 32+80, 10+80)
	temperatureFrame = image.Rect(0, 95, 144, 95+68)
	cityFrame        = image.Rect(0, 125, 144, 125+68)
)

// Values shown until the phone answers.
var initialValues = []proto.Tuple{
	proto.IntTuple(proto.WeatherIconKey, int32(IconCloud)),
	proto.CStringTuple(proto.WeatherTemperatureKey, "1234C"),
	proto.CStringTuple(proto.WeatherCityKey, "St Pebblesburg"),
}

var (
	black = color.RGBA{A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

type Config struct {
	Marquee marquee.Config
	// TickMillis is the marquee timer period in kernel ticks.
	TickMillis uint32
	Debug      bool
}

func DefaultConfig() Config {
	return Config{Marquee: marquee.DefaultConfig(), TickMillis: 50}
}

type Task struct {
	disp hal.Display
	ep   kernel.Capability

	logCap   kernel.Capability
	timeCap  kernel.Capability
	phoneCap kernel.Capability

	cfg  Config
	log  logclient.Logger
	done chan struct{}

	fb      hal.Framebuffer
	win     *ui.Window
	reg     *marquee.Registry
	metrics *ui.CachedMetrics
	icon    *ui.BitmapLayer
	temp    *ui.TextLayer
	city    *ui.MarqueeLayer
	sync    *dictSync
	timer   *timeclient.Timer

	iconID   int32
	ticks    uint64
	frames   uint64
	requests int
	unloaded bool
}

// New returns the watch app. ep must carry send and receive rights; the
// app hands out its send right as the reply address for the time service
// and the phone.
func New(disp hal.Display, ep, logCap, timeCap, phoneCap kernel.Capability, cfg Config) *Task {
	return &Task{
		disp:     disp,
		ep:       ep,
		logCap:   logCap,
		timeCap:  timeCap,
		phoneCap: phoneCap,
		cfg:      cfg,
		iconID:   -1,
		done:     make(chan struct{}),
	}
}

// Done is closed once the app has unloaded and Run returned.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) Run(ctx *kernel.Context) {
	defer close(t.done)

	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	t.log = logclient.New(ctx, t.logCap, "weather: ", t.cfg.Debug)
	if err := t.load(ctx); err != nil {
		t.log.Printf("load: %v", err)
		t.unload()
		return
	}
	t.redraw()

	for {
		msg, ok := <-ch
		if !ok {
			t.unload()
			return
		}
		t.handle(ctx, msg)
	batch:
		for !t.unloaded {
			select {
			case msg, ok := <-ch:
				if !ok {
					t.unload()
					break batch
				}
				t.handle(ctx, msg)
			default:
				break batch
			}
		}
		if t.unloaded {
			t.log.Printf("unloaded after %d frames", t.frames)
			return
		}
		t.redraw()
	}
}

func (t *Task) load(ctx *kernel.Context) error {
	if t.disp == nil || t.disp.Framebuffer() == nil {
		return fmt.Errorf("no display")
	}
	t.fb = t.disp.Framebuffer()
	if t.fb.Format() != hal.PixelFormatRGB565 {
		return fmt.Errorf("unsupported pixel format %d", t.fb.Format())
	}

	metrics, err := ui.NewCachedMetrics(ui.TextMetrics{}, 32)
	if err != nil {
		return err
	}
	t.metrics = metrics
	t.win = ui.NewWindow(image.Pt(t.fb.Width(), t.fb.Height()), black)
	root := t.win.Root()

	t.icon = ui.NewBitmapLayer(iconFrame)
	root.AddChild(t.icon.Layer())

	t.temp = ui.NewTextLayer(temperatureFrame)
	t.temp.SetTextColor(white)
	t.temp.SetBackgroundColor(ui.Clear)
	t.temp.SetFont(fonts.Large)
	t.temp.SetAlignment(marquee.AlignCenter)
	root.AddChild(t.temp.Layer())

	t.reg = marquee.NewRegistry(t.cfg.Marquee)
	city, err := ui.NewMarqueeLayer(t.reg, cityFrame, marquee.DefaultStyle(), t.metrics)
	if err != nil {
		return fmt.Errorf("city marquee: %w", err)
	}
	t.city = city
	t.city.Marquee().SetTextColor(white)
	t.city.Marquee().SetBackgroundColor(ui.Clear)
	t.city.Marquee().SetFont(fonts.Large)
	root.AddChild(t.city.Layer())

	t.sync = newDictSync(initialValues, t.tupleChanged, t.syncError)
	t.sendRequest(ctx)

	t.timer = timeclient.NewTimer(t.timeCap, t.ep, marqueeTimerID, t.cfg.TickMillis)
	if err := t.timer.Start(ctx); err != nil {
		// The screen still works without scrolling.
		t.log.Printf("marquee timer: %v", err)
	}
	return nil
}

func (t *Task) unload() {
	if t.unloaded {
		return
	}
	t.unloaded = true
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.city != nil {
		t.city.Destroy()
	}
	if t.icon != nil {
		t.icon.SetBitmap(nil)
	}
	t.log.Debugf("marquee ticked %d times", t.ticks)
}

func (t *Task) handle(ctx *kernel.Context, msg kernel.Message) {
	if t.timer != nil {
		fired, err := t.timer.HandleWake(ctx, msg)
		if err != nil {
			t.log.Printf("marquee timer: %v", err)
		}
		if fired {
			t.ticks++
			t.reg.Tick()
			return
		}
	}

	switch proto.Kind(msg.Kind) {
	case proto.MsgWeatherDict:
		t.sync.apply(msg.Payload())
	case proto.MsgKey:
		code, press, ok := proto.DecodeKeyPayload(msg.Payload())
		if !ok || !press {
			return
		}
		t.handleKey(ctx, hal.KeyCode(code))
	case proto.MsgAppShutdown:
		t.unload()
	case proto.MsgError:
		code, ref, _, detail, ok := proto.DecodeErrorPayload(msg.Payload())
		if !ok {
			t.log.Printf("malformed error message")
			return
		}
		t.log.Printf("%s error: %s %s", ref, code, detail)
	default:
		t.log.Debugf("ignoring %s", proto.Kind(msg.Kind))
	}
}

func (t *Task) handleKey(ctx *kernel.Context, k hal.KeyCode) {
	switch k {
	case hal.KeyEnter:
		t.sendRequest(ctx)
	case hal.KeyEscape:
		t.unload()
	default:
		t.log.Debugf("key %s", k)
	}
}

// sendRequest asks the phone for fresh weather.
func (t *Task) sendRequest(ctx *kernel.Context) {
	payload, err := proto.DictPayload([]proto.Tuple{proto.IntTuple(1, 1)}, kernel.MaxMessageBytes)
	if err != nil {
		t.log.Printf("request: %v", err)
		return
	}
	res := ctx.SendToCapResult(t.phoneCap, uint16(proto.MsgWeatherRequest), payload, t.ep.Restrict(kernel.RightSend))
	if res != kernel.SendOK {
		t.log.Printf("request: %s", res)
		return
	}
	t.requests++
}

func (t *Task) tupleChanged(key uint32, newTuple, _ proto.Tuple) {
	switch key {
	case proto.WeatherIconKey:
		bmp, ok := iconBitmap(newTuple.Int)
		if !ok {
			t.log.Printf("unknown icon %d", newTuple.Int)
			return
		}
		t.iconID = newTuple.Int
		t.icon.SetBitmap(bmp)
	case proto.WeatherTemperatureKey:
		t.log.Debugf("temperature %q", newTuple.Str)
		t.temp.SetText(newTuple.Str)
	case proto.WeatherCityKey:
		t.log.Debugf("city %q", newTuple.Str)
		t.city.Marquee().SetText(newTuple.Str)
	}
}

func (t *Task) syncError(err error) {
	t.log.Printf("sync: %v", err)
}

func (t *Task) redraw() {
	if t.win == nil || !t.win.Render(t.fb) {
		return
	}
	if err := t.fb.Present(); err != nil {
		t.log.Printf("present: %v", err)
		return
	}
	t.frames++
}
