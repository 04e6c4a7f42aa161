package proto

import "strings"

// LogLinePayload encodes a MsgLogLine payload.
//
// The payload is UTF-8 without a trailing newline, cut to max bytes.
// Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(line string, max int) []byte {
	line = strings.TrimRight(line, "\r\n")
	if max >= 0 && len(line) > max {
		line = line[:max]
	}
	return []byte(line)
}
