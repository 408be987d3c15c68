package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type recordingWriter struct {
	writes []int
	buf    bytes.Buffer
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.buf.Write(p)
}

func TestChunkWriterSplitsLargeFrames(t *testing.T) {
	rw := &recordingWriter{}
	cw := NewChunkWriter(rw, 0, 0)

	frame := strings.Repeat("x", 2*maxChunkSize+10)
	cw.WriteString(frame)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []int{maxChunkSize, maxChunkSize, 10}
	if len(rw.writes) != len(want) {
		t.Fatalf("writes = %v, want %v", rw.writes, want)
	}
	for i := range want {
		if rw.writes[i] != want[i] {
			t.Fatalf("writes = %v, want %v", rw.writes, want)
		}
	}
	if rw.buf.String() != frame {
		t.Fatalf("frame was altered in transit")
	}

	// The queue is empty after a flush.
	if err := cw.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if len(rw.writes) != len(want) {
		t.Fatalf("empty flush wrote %v", rw.writes[len(want):])
	}
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	cw.SetOffset(0, 0)
	cw.WriteAt(5, 7, "!")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := out.String(), "\033[3;4Hhi\033[7;5H!"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestChunkWriterFlushErrorDropsFrame(t *testing.T) {
	cw := NewChunkWriter(failingWriter{}, 0, 0)
	cw.WriteString("frame")
	if err := cw.Flush(); err == nil {
		t.Fatalf("expected write error")
	}
	if len(cw.frame) != 0 {
		t.Fatalf("frame kept %d bytes after a failed flush", len(cw.frame))
	}
}
