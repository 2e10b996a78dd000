package uartwatch

import (
	"bytes"
	"iter"
	"strings"
	"time"
)

// LogLine is one complete, trimmed line of device output
type LogLine struct {
	Seq  uint64    // 1-based, monotonically increasing per Reassembler
	Text string    // trimmed, valid UTF-8, never empty
	Time time.Time // completion time
}

// Reassembler turns arbitrarily split byte chunks into complete lines.
//
// Lines end at '\n' or a bare '\r'. The buffer keeps raw bytes, so a rune
// split across two chunks decodes intact once its line is complete. Invalid
// UTF-8 is dropped when a line is decoded. A Reassembler is not safe for
// concurrent use; each Session owns exactly one.
type Reassembler struct {
	buf []byte
	seq uint64
	now func() time.Time
}

// NewReassembler returns an empty Reassembler
func NewReassembler() *Reassembler {
	return &Reassembler{now: time.Now}
}

// Feed appends chunk to the buffer and returns the lines it completes.
//
// The chunk is buffered immediately; lines are split off lazily while the
// returned sequence is ranged over. Lines left unconsumed when the caller
// stops early are yielded by the next call to Feed.
func (r *Reassembler) Feed(chunk []byte) iter.Seq[LogLine] {
	r.buf = append(r.buf, chunk...)

	return func(yield func(LogLine) bool) {
		for {
			line, ok := r.next()
			if !ok {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// next splits the earliest terminated segment off the buffer, skipping
// segments that are empty after trimming.
func (r *Reassembler) next() (LogLine, bool) {
	for {
		idx := bytes.IndexAny(r.buf, "\r\n")
		if idx < 0 {
			return LogLine{}, false
		}

		segment := r.buf[:idx]
		r.buf = r.buf[idx+1:]

		text := strings.TrimSpace(strings.ToValidUTF8(string(segment), ""))
		if text == "" {
			continue
		}

		r.seq++
		return LogLine{Seq: r.seq, Text: text, Time: r.now()}, true
	}
}

// Pending returns the number of buffered bytes not yet terminated
func (r *Reassembler) Pending() int {
	return len(r.buf)
}

// Reset drops any partial line and restarts sequence numbering
func (r *Reassembler) Reset() {
	r.buf = nil
	r.seq = 0
}
