package phone

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wristwx/wxos/kernel"
	"wristwx/wxos/proto"

	"github.com/google/go-cmp/cmp"
)

const testTimeout = 2 * time.Second

func TestIconFromWeatherID(t *testing.T) {
	tests := []struct {
		id   int
		want uint8
	}{
		{200, IconRain},
		{599, IconRain},
		{600, IconSnow},
		{699, IconSnow},
		{700, IconSun},
		{800, IconSun},
		{801, IconCloud},
		{804, IconCloud},
	}
	for _, tt := range tests {
		if got := IconFromWeatherID(tt.id); got != tt.want {
			t.Fatalf("IconFromWeatherID(%d)=%d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := map[float64]string{
		273.15: "0°C",
		285.6:  "12°C",
		300:    "27°C",
		268.0:  "-5°C",
	}
	for k, want := range tests {
		if got := FormatTemperature(k); got != want {
			t.Fatalf("FormatTemperature(%v)=%q, want %q", k, got, want)
		}
	}
}

func TestOWMFetch(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find/city" {
			http.NotFound(w, r)
			return
		}
		query = r.URL.RawQuery
		w.Write([]byte(`{"list":[{"name":"Oslo","main":{"temp":280.15},"weather":[{"id":601}]}]}`))
	}))
	defer srv.Close()

	got, err := NewOWM(srv.URL+"/", 59.9, 10.75, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := Report{Icon: IconSnow, Temperature: "7°C", City: "Oslo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if query != "cnt=1&lat=59.9&lon=10.75" {
		t.Fatalf("query=%q", query)
	}
}

func TestOWMFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     error
	}{
		{name: "status", status: http.StatusInternalServerError, body: `{}`},
		{name: "empty", status: http.StatusOK, body: `{"list":[]}`, is: ErrNoResults},
		{name: "garbage", status: http.StatusOK, body: `{"list":`},
		{name: "no conditions", status: http.StatusOK, body: `{"list":[{"name":"X","main":{"temp":1}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOWM(srv.URL, 0, 0, time.Second).Fetch(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("err=%v, want %v", err, tt.is)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	src := `
# morning
icon 2
temp "7°C"
city 'St Pebblesburg'   # trailing comment
send

wait 100
fail
`
	s, err := ParseScript(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	want := []Step{
		{Op: OpIcon, Int: 2, Line: 3},
		{Op: OpTemp, Str: "7°C", Line: 4},
		{Op: OpCity, Str: "St Pebblesburg", Line: 5},
		{Op: OpSend, Line: 6},
		{Op: OpWait, Int: 100, Line: 8},
		{Op: OpFail, Line: 9},
	}
	if diff := cmp.Diff(want, s.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, src := range []string{
		"jump 3",
		"icon",
		"icon sun",
		"icon 300",
		"wait -1",
		"send now",
		`city "unterminated`,
		"temp a b",
	} {
		if _, err := ParseScript(strings.NewReader(src)); !errors.Is(err, ErrScript) {
			t.Fatalf("%q: err=%v", src, err)
		}
	}
}

// watchProbe asks once for weather and forwards every reply.
type watchProbe struct {
	ep    kernel.Capability
	phone kernel.Capability
	got   chan []proto.Tuple
}

func (w *watchProbe) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(w.ep)
	if !ok {
		return
	}
	payload, _ := proto.DictPayload([]proto.Tuple{proto.IntTuple(1, 1)}, kernel.MaxMessageBytes)
	ctx.SendToCapResult(w.phone, uint16(proto.MsgWeatherRequest), payload, w.ep.Restrict(kernel.RightSend))
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgWeatherDict {
			continue
		}
		tuples, ok := proto.DecodeDictPayload(msg.Payload())
		if !ok {
			continue
		}
		w.got <- tuples
	}
}

func runPhone(t *testing.T, cfg Config) chan []proto.Tuple {
	t.Helper()
	k := kernel.New()
	phoneEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	watchEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	got := make(chan []proto.Tuple, 8)

	k.AddTask(New(phoneEP.Restrict(kernel.RightRecv), kernel.Capability{}, cfg))
	k.AddTask(&watchProbe{ep: watchEP, phone: phoneEP.Restrict(kernel.RightSend), got: got})

	stop := make(chan struct{})
	go func() {
		for i := uint64(1); ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			k.TickTo(i)
			time.Sleep(100 * time.Microsecond)
		}
	}()
	t.Cleanup(func() {
		close(stop)
		k.CloseEndpoint(phoneEP)
		k.CloseEndpoint(watchEP)
	})
	return got
}

func expect(t *testing.T, got chan []proto.Tuple, want []proto.Tuple) {
	t.Helper()
	select {
	case tuples := <-got:
		if diff := cmp.Diff(want, tuples); diff != "" {
			t.Fatalf("dict mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for a weather dict")
	}
}

func TestTaskAnswersFromSource(t *testing.T) {
	r := Report{Icon: IconCloud, Temperature: "12°C", City: "Oslo"}
	got := runPhone(t, Config{Source: Static(r)})
	expect(t, got, r.Tuples())
}

type failingSource struct{}

func (failingSource) Fetch(context.Context) (Report, error) { return Report{}, errors.New("offline") }

func TestTaskReportsFetchFailure(t *testing.T) {
	got := runPhone(t, Config{Source: failingSource{}})
	expect(t, got, unavailableTuples())
}

func TestTaskPlaysScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader(`
send
wait 20
icon 3
temp "-2°C"
send
wait 5
fail
`))
	if err != nil {
		t.Fatal(err)
	}
	initial := Report{Icon: IconSun, Temperature: "1°C", City: "Tromsø"}
	got := runPhone(t, Config{Script: s, Initial: initial})

	// The request answer and the first script send carry the same report.
	expect(t, got, initial.Tuples())
	expect(t, got, initial.Tuples())
	expect(t, got, Report{Icon: IconSnow, Temperature: "-2°C", City: "Tromsø"}.Tuples())
	expect(t, got, unavailableTuples())
}
