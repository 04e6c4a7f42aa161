package phone

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/shlex"
)

var ErrScript = errors.New("phone script")

type Op uint8

const (
	OpIcon Op = iota + 1
	OpTemp
	OpCity
	OpSend
	OpFail
	OpWait
)

func (o Op) String() string {
	switch o {
	case OpIcon:
		return "icon"
	case OpTemp:
		return "temp"
	case OpCity:
		return "city"
	case OpSend:
		return "send"
	case OpFail:
		return "fail"
	case OpWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Step is one script command.
type Step struct {
	Op   Op
	Int  int
	Str  string
	Line int
}

// Script is a list of weather updates played on the tick clock:
//
//	# comment
//	icon 2
//	temp "7°C"
//	city "St Pebblesburg"
//	send
//	wait 5000
//	fail
//
// icon, temp and city edit the pending report; send delivers it; fail
// delivers the "unavailable" update; wait pauses for a number of ticks.
type Script struct {
	Steps []Step
}

func ParseScript(r io.Reader) (*Script, error) {
	s := &Script{}
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrScript, line, err)
		}
		if len(args) == 0 {
			continue
		}
		step, err := parseStep(args)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrScript, line, err)
		}
		step.Line = line
		s.Steps = append(s.Steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	return s, nil
}

func parseStep(args []string) (Step, error) {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "send", "fail":
		if len(rest) != 0 {
			return Step{}, fmt.Errorf("%s takes no arguments", cmd)
		}
		if cmd == "send" {
			return Step{Op: OpSend}, nil
		}
		return Step{Op: OpFail}, nil
	case "temp", "city":
		if len(rest) != 1 {
			return Step{}, fmt.Errorf("usage: %s TEXT", cmd)
		}
		if cmd == "temp" {
			return Step{Op: OpTemp, Str: rest[0]}, nil
		}
		return Step{Op: OpCity, Str: rest[0]}, nil
	case "icon":
		if len(rest) != 1 {
			return Step{}, fmt.Errorf("usage: icon N")
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 0 || n > 255 {
			return Step{}, fmt.Errorf("bad icon %q", rest[0])
		}
		return Step{Op: OpIcon, Int: n}, nil
	case "wait":
		if len(rest) != 1 {
			return Step{}, fmt.Errorf("usage: wait TICKS")
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 0 {
			return Step{}, fmt.Errorf("bad wait %q", rest[0])
		}
		return Step{Op: OpWait, Int: n}, nil
	default:
		return Step{}, fmt.Errorf("unknown command %q", cmd)
	}
}
