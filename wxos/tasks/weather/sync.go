package weather

import (
	"errors"
	"fmt"

	"wristwx/wxos/proto"
)

// syncBufferBytes bounds the dictionary the watch keeps in sync.
const syncBufferBytes = 64

var (
	ErrSyncOverflow = errors.New("weather sync: dictionary exceeds sync buffer")
	ErrSyncDecode   = errors.New("weather sync: undecodable dictionary")
)

type tupleChangedFunc func(key uint32, newTuple, oldTuple proto.Tuple)

// dictSync keeps the last value of every key and reports changes.
type dictSync struct {
	values  map[uint32]proto.Tuple
	changed tupleChangedFunc
	onError func(error)
}

// newDictSync installs initial and reports each of its tuples as changed.
func newDictSync(initial []proto.Tuple, changed tupleChangedFunc, onError func(error)) *dictSync {
	s := &dictSync{
		values:  make(map[uint32]proto.Tuple, len(initial)),
		changed: changed,
		onError: onError,
	}
	s.update(initial)
	return s
}

// apply decodes a MsgWeatherDict payload and merges it.
func (s *dictSync) apply(payload []byte) {
	if len(payload) > syncBufferBytes {
		s.fail(fmt.Errorf("%w: %d > %d bytes", ErrSyncOverflow, len(payload), syncBufferBytes))
		return
	}
	tuples, ok := proto.DecodeDictPayload(payload)
	if !ok {
		s.fail(ErrSyncDecode)
		return
	}
	s.update(tuples)
}

func (s *dictSync) update(tuples []proto.Tuple) {
	for _, t := range tuples {
		old, had := s.values[t.Key]
		if had && old.Equal(t) {
			continue
		}
		s.values[t.Key] = t
		if s.changed != nil {
			s.changed(t.Key, t, old)
		}
	}
}

func (s *dictSync) fail(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *dictSync) get(key uint32) (proto.Tuple, bool) {
	t, ok := s.values[key]
	return t, ok
}
