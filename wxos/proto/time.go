package proto

import "encoding/binary"

// SleepPayload encodes a MsgSleep request. The time service answers with
// MsgWake on the capability transferred with the request.
//
// Layout (little-endian):
//   - u32: timer id
//   - u32: dt ticks
func SleepPayload(timerID uint32, dt uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], timerID)
	binary.LittleEndian.PutUint32(buf[4:8], dt)
	return buf
}

// DecodeSleepPayload decodes a SleepPayload.
func DecodeSleepPayload(payload []byte) (timerID uint32, dt uint32, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	timerID = binary.LittleEndian.Uint32(payload[0:4])
	dt = binary.LittleEndian.Uint32(payload[4:8])
	return timerID, dt, true
}

// WakePayload encodes a MsgWake response.
//
// Layout (little-endian):
//   - u32: timer id
//   - u64: tick at which the timer fired
func WakePayload(timerID uint32, now uint64) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], timerID)
	binary.LittleEndian.PutUint64(buf[4:12], now)
	return buf
}

// DecodeWakePayload decodes a WakePayload.
func DecodeWakePayload(payload []byte) (timerID uint32, now uint64, ok bool) {
	if len(payload) < 12 {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), binary.LittleEndian.Uint64(payload[4:12]), true
}
