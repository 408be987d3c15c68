package draw

import (
	"io"
	"os"
	"slices"
	"strconv"

	"golang.org/x/term"

	"github.com/tomz197/asteroids-arcade/internal/input"
)

// maxChunkSize bounds a single write so one frame leaves as a run of
// packet-sized pieces instead of one large burst.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and writes it to the
// underlying writer in pieces of at most maxChunkSize bytes. Cursor moves
// are relative to the canvas origin, shifted by the centering offset.
type ChunkWriter struct {
	w      io.Writer
	frame  []byte
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter in front of w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		frame:  make([]byte, 0, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset changes the centering offset, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor queues a cursor move to the 1-based canvas cell (col,row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.offRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.offCol), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write queues p. It never fails; errors surface from Flush.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString queues s.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt queues s at the 1-based canvas cell (col,row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// Flush sends the queued frame and empties the queue, even on error.
func (cw *ChunkWriter) Flush() error {
	defer func() { cw.frame = cw.frame[:0] }()
	for chunk := range slices.Chunk(cw.frame, maxChunkSize) {
		if _, err := cw.w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnableMouse turns on any-motion mouse reporting with SGR coordinates.
func EnableMouse(w io.Writer) {
	io.WriteString(w, input.EnableMouseSeq)
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	io.WriteString(w, input.DisableMouseSeq)
}
