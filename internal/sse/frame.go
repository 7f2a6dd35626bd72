// Package sse implements the client side of the backend's text/event-stream
// wire format: chunk buffering across arbitrary read boundaries and the
// line-oriented record grammar.
package sse

import "bytes"

// Records end at a blank line: LF-framed streams separate with "\n\n",
// CRLF-framed ones with "\r\n\r\n". Any CR left inside a record is stripped
// per line by ParseRecord.
var (
	recordSepLF   = []byte("\n\n")
	recordSepCRLF = []byte("\r\n\r\n")
)

// Buffer accumulates raw transport chunks and splits them into complete wire
// records. A record is only emitted once its blank-line separator has been
// seen; anything after the last separator is retained for the next Feed call,
// so partial records (and partial UTF-8 sequences) survive chunk boundaries.
type Buffer struct {
	buf []byte
}

// Feed appends chunk to the accumulator and returns the raw text of every
// record completed by it, in arrival order. One chunk may complete zero, one,
// or many records.
func (b *Buffer) Feed(chunk []byte) []string {
	b.buf = append(b.buf, chunk...)

	var records []string
	for {
		idx, width := nextRecordSep(b.buf)
		if idx < 0 {
			return records
		}
		records = append(records, string(b.buf[:idx]))
		b.buf = b.buf[idx+width:]
	}
}

// nextRecordSep locates the earliest record separator in buf and reports its
// offset and width, or -1 when no complete separator is buffered yet.
func nextRecordSep(buf []byte) (idx, width int) {
	lf := bytes.Index(buf, recordSepLF)
	crlf := bytes.Index(buf, recordSepCRLF)
	if crlf >= 0 && (lf < 0 || crlf < lf) {
		return crlf, len(recordSepCRLF)
	}
	if lf >= 0 {
		return lf, len(recordSepLF)
	}
	return -1, 0
}

// Pending returns the unterminated tail held in the accumulator. A non-empty
// tail at end of stream means the connection closed mid-record; the stream
// layer deliberately does not flush it as a record.
func (b *Buffer) Pending() string {
	return string(b.buf)
}
