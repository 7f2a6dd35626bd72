package sse

import (
	"reflect"
	"testing"
)

const wireText = "event: session_established\ndata: {\"session_id\":\"s1\"}\n\n" +
	"event: token\ndata: {\"delta\":\"你好\"}\n\n" +
	"event: complete\ndata: {\"session_id\":\"s1\"}\n\n"

func feedAll(b *Buffer, text string, chunkSize int) []string {
	var records []string
	data := []byte(text)
	for len(data) > 0 {
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		records = append(records, b.Feed(data[:n])...)
		data = data[n:]
	}
	return records
}

func TestBufferSingleChunk(t *testing.T) {
	var b Buffer
	records := b.Feed([]byte(wireText))
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d: %q", len(records), records)
	}
	if b.Pending() != "" {
		t.Fatalf("expected empty pending tail, got %q", b.Pending())
	}
}

func TestBufferFragmentationIndependence(t *testing.T) {
	var whole Buffer
	want := whole.Feed([]byte(wireText))

	// Any chunking of the same bytes must produce the same record sequence.
	// Size 1 also forces multi-byte UTF-8 sequences across chunk boundaries.
	for _, size := range []int{1, 2, 3, 5, 7, 16, 64} {
		var b Buffer
		got := feedAll(&b, wireText, size)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk size %d: got %q want %q", size, got, want)
		}
		if b.Pending() != "" {
			t.Fatalf("chunk size %d: leftover pending %q", size, b.Pending())
		}
	}
}

func TestBufferRetainsUnterminatedTail(t *testing.T) {
	var b Buffer
	records := b.Feed([]byte("event: token\ndata: {\"delta\":\"a\"}\n\nevent: com"))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if b.Pending() != "event: com" {
		t.Fatalf("unexpected pending tail: %q", b.Pending())
	}

	records = b.Feed([]byte("plete\ndata: {}\n\n"))
	if len(records) != 1 {
		t.Fatalf("expected 1 record after completing tail, got %d", len(records))
	}
	if records[0] != "event: complete\ndata: {}" {
		t.Fatalf("unexpected record: %q", records[0])
	}
}

func TestBufferManyRecordsInOneChunk(t *testing.T) {
	var b Buffer
	records := b.Feed([]byte("data: 1\n\ndata: 2\n\ndata: 3\n\n"))
	want := []string{"data: 1", "data: 2", "data: 3"}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("got %q want %q", records, want)
	}
}

func TestBufferCRLFSeparator(t *testing.T) {
	var b Buffer
	records := b.Feed([]byte("event: token\r\ndata: {\"delta\":\"a\"}\r\n\r\n"))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d (pending %q)", len(records), b.Pending())
	}
	if b.Pending() != "" {
		t.Fatalf("expected empty pending tail, got %q", b.Pending())
	}

	rec := ParseRecord(records[0])
	if rec.Event != "token" || rec.Data != "{\"delta\":\"a\"}" {
		t.Fatalf("unexpected parsed record: %+v", rec)
	}
}

func TestBufferCRLFFragmentationIndependence(t *testing.T) {
	crlfText := "event: token\r\ndata: {\"delta\":\"你\"}\r\n\r\n" +
		"data: 1\r\n\r\ndata: 2\r\n\r\n"

	var whole Buffer
	want := whole.Feed([]byte(crlfText))
	if len(want) != 3 {
		t.Fatalf("expected 3 records, got %d: %q", len(want), want)
	}

	// Size 1 and 3 force the four-byte separator across chunk boundaries.
	for _, size := range []int{1, 2, 3, 5, 16} {
		var b Buffer
		got := feedAll(&b, crlfText, size)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk size %d: got %q want %q", size, got, want)
		}
		if b.Pending() != "" {
			t.Fatalf("chunk size %d: leftover pending %q", size, b.Pending())
		}
	}
}

func TestBufferNoSeparatorNoRecord(t *testing.T) {
	var b Buffer
	if records := b.Feed([]byte("event: token\ndata: {\"delta\":\"x\"}\n")); records != nil {
		t.Fatalf("expected no records before separator, got %q", records)
	}
}
