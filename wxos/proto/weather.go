package proto

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Weather dictionary keys shared by the watch app and the phone companion.
const (
	WeatherIconKey        uint32 = 0x0 // int
	WeatherTemperatureKey uint32 = 0x1 // cstring
	WeatherCityKey        uint32 = 0x2 // cstring
)

// TupleType is the value type of a dictionary tuple.
type TupleType uint8

const (
	TupleInt TupleType = iota
	TupleCString
)

func (t TupleType) String() string {
	switch t {
	case TupleInt:
		return "int"
	case TupleCString:
		return "cstring"
	default:
		return "unknown"
	}
}

// Tuple is one key/value pair of a weather dictionary.
type Tuple struct {
	Key  uint32
	Type TupleType
	Int  int32
	Str  string
}

// IntTuple returns an integer tuple.
func IntTuple(key uint32, v int32) Tuple { return Tuple{Key: key, Type: TupleInt, Int: v} }

// CStringTuple returns a string tuple.
func CStringTuple(key uint32, s string) Tuple { return Tuple{Key: key, Type: TupleCString, Str: s} }

// Equal reports whether two tuples carry the same key, type and value.
func (t Tuple) Equal(o Tuple) bool {
	if t.Key != o.Key || t.Type != o.Type {
		return false
	}
	if t.Type == TupleInt {
		return t.Int == o.Int
	}
	return t.Str == o.Str
}

func (t Tuple) String() string {
	if t.Type == TupleInt {
		return fmt.Sprintf("%d=%d", t.Key, t.Int)
	}
	return fmt.Sprintf("%d=%q", t.Key, t.Str)
}

var ErrDictTooLarge = errors.New("weather dict: too large")

const maxDictTuples = 16

// DictPayload encodes a MsgWeatherDict payload.
//
// Layout (little-endian):
//   - u8: tuple count
//   - per tuple: u32 key, u8 type, u16 len, value bytes
//     (int values are 4 bytes, cstrings are raw UTF-8 without terminator)
func DictPayload(tuples []Tuple, max int) ([]byte, error) {
	if len(tuples) > maxDictTuples {
		return nil, ErrDictTooLarge
	}
	buf := []byte{byte(len(tuples))}
	for _, t := range tuples {
		var hdr [7]byte
		binary.LittleEndian.PutUint32(hdr[0:4], t.Key)
		hdr[4] = byte(t.Type)
		switch t.Type {
		case TupleInt:
			binary.LittleEndian.PutUint16(hdr[5:7], 4)
			buf = append(buf, hdr[:]...)
			buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Int))
		case TupleCString:
			if len(t.Str) > 0xFFFF {
				return nil, ErrDictTooLarge
			}
			binary.LittleEndian.PutUint16(hdr[5:7], uint16(len(t.Str)))
			buf = append(buf, hdr[:]...)
			buf = append(buf, t.Str...)
		default:
			return nil, fmt.Errorf("weather dict: key %d: bad tuple type %d", t.Key, t.Type)
		}
	}
	if max >= 0 && len(buf) > max {
		return nil, ErrDictTooLarge
	}
	return buf, nil
}

// DecodeDictPayload decodes a DictPayload.
func DecodeDictPayload(payload []byte) ([]Tuple, bool) {
	if len(payload) < 1 {
		return nil, false
	}
	n := int(payload[0])
	if n > maxDictTuples {
		return nil, false
	}
	b := payload[1:]
	out := make([]Tuple, 0, n)
	for i := 0; i < n; i++ {
		if len(b) < 7 {
			return nil, false
		}
		key := binary.LittleEndian.Uint32(b[0:4])
		typ := TupleType(b[4])
		size := int(binary.LittleEndian.Uint16(b[5:7]))
		b = b[7:]
		if len(b) < size {
			return nil, false
		}
		val := b[:size]
		b = b[size:]
		switch typ {
		case TupleInt:
			if size != 4 {
				return nil, false
			}
			out = append(out, IntTuple(key, int32(binary.LittleEndian.Uint32(val))))
		case TupleCString:
			out = append(out, CStringTuple(key, string(val)))
		default:
			return nil, false
		}
	}
	if len(b) != 0 {
		return nil, false
	}
	return out, true
}

// KeyPayload encodes a MsgKey payload: u16 key code, u8 pressed flag.
func KeyPayload(code uint16, press bool) []byte {
	buf := make([]byte, 3)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	if press {
		buf[2] = 1
	}
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(payload []byte) (code uint16, press bool, ok bool) {
	if len(payload) < 3 {
		return 0, false, false
	}
	return binary.LittleEndian.Uint16(payload[0:2]), payload[2] != 0, true
}
