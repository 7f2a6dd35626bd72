package sse

import "strings"

// Record is one parsed wire record. Event is empty when the record carried no
// event field; Data is the ordered data lines joined with newlines.
type Record struct {
	Event string
	Data  string
}

// ParseRecord applies the line grammar to the raw text of one record
// (everything between separators):
//
//   - blank lines and comment lines (":" prefix) are skipped
//   - "event: name" sets the event name, last occurrence wins
//   - "data: text" appends a data line; lines are joined with "\n"
//   - exactly one leading space after the colon is stripped
//   - lines without a colon, and unrecognized fields, are ignored
//
// The transform is pure; malformed lines never produce an error.
func ParseRecord(raw string) Record {
	var rec Record
	var dataLines []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			rec.Event = value
		case "data":
			dataLines = append(dataLines, value)
		}
	}

	rec.Data = strings.Join(dataLines, "\n")
	return rec
}
