package executor

import (
	"bytes"
)

// binarySampleSize is how many leading bytes are scanned for NUL, as git does.
const binarySampleSize = 8000

const binaryPlaceholder = "[Binary Content]"

// stream keeps the head of one output stream up to a byte limit.
// Accepted text is also handed to onChunk as it arrives.
type stream struct {
	buf     bytes.Buffer
	limit   int
	onChunk func(string)

	scanned int
	unicode bool // started with a UTF-16/32 BOM, NULs are expected
	binary  bool
	dropped bool
}

func newStream(limit int, onChunk func(string)) *stream {
	return &stream{limit: limit, onChunk: onChunk}
}

// Write never fails so the child never sees a broken pipe.
func (s *stream) Write(p []byte) (int, error) {
	if chunk := s.accept(p); chunk != "" && s.onChunk != nil {
		s.onChunk(chunk)
	}
	return len(p), nil
}

func (s *stream) accept(p []byte) string {
	if s.binary {
		return ""
	}
	if s.scanned == 0 && hasUnicodeBOM(p) {
		s.unicode = true
	}
	if !s.unicode && s.scanned < binarySampleSize {
		n := min(len(p), binarySampleSize-s.scanned)
		if bytes.IndexByte(p[:n], 0) >= 0 {
			s.binary = true
			s.dropped = true
			s.buf.Reset()
			return ""
		}
		s.scanned += n
	} else {
		s.scanned += len(p)
	}

	room := s.limit - s.buf.Len()
	if room <= 0 {
		s.dropped = true
		return ""
	}
	if len(p) > room {
		p = p[:room]
		s.dropped = true
	}
	s.buf.Write(p)
	return string(p)
}

func (s *stream) String() string {
	if s.binary {
		return binaryPlaceholder
	}
	return s.buf.String()
}

// Truncated reports whether any output was dropped.
func (s *stream) Truncated() bool {
	return s.dropped
}

func hasUnicodeBOM(p []byte) bool {
	switch {
	case len(p) >= 2 && p[0] == 0xFF && p[1] == 0xFE:
		return true
	case len(p) >= 2 && p[0] == 0xFE && p[1] == 0xFF:
		return true
	case len(p) >= 4 && p[0] == 0x00 && p[1] == 0x00 && p[2] == 0xFE && p[3] == 0xFF:
		return true
	}
	return false
}
