package channel

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// StreamExt is the file extension of a channel stream.
	StreamExt = ".ncs"
	// EventExt is the file extension of an event stream.
	EventExt = ".nev"
	// OutputExt is the file extension of a converted output file.
	OutputExt = ".mat"

	// NumberedPrefix is the naming prefix of numbered channel streams, e.g.
	// "CSC17.ncs" for channel 17.
	NumberedPrefix = "CSC"
)

// File is one directory entry classified for sorting purposes.
type File struct {
	// Name is the bare file name, without directory components.
	Name string
	// Index is the parsed channel number. Only meaningful when Numbered is true.
	Index int
	// Numbered reports whether Name matches the numbered channel-stream
	// naming convention: NumberedPrefix, digits, StreamExt.
	Numbered bool
}

// ParseFile classifies a single directory entry.
//
// A file counts as numbered only if it carries the stream extension, starts
// with the numbered prefix and the text between prefix and extension is all
// digits. "CSC12b.ncs" and "CSC.ncs" are not numbered.
func ParseFile(name string) File {
	if !strings.HasSuffix(name, StreamExt) || !strings.HasPrefix(name, NumberedPrefix) {
		return File{Name: name}
	}

	base := strings.TrimSuffix(strings.TrimPrefix(name, NumberedPrefix), StreamExt)
	idx, err := strconv.Atoi(base)
	if err != nil || base == "" || idx < 0 {
		return File{Name: name}
	}

	return File{Name: name, Index: idx, Numbered: true}
}

// Sort produces the total processing order over a recording directory's
// entries: numbered channel streams first, ascending by channel number, then
// every other entry in lexicographic order.
//
// Duplicate channel numbers keep their input order (the sort is stable); the
// order between such duplicates is unspecified but never an error.
func Sort(names []string) []string {
	numbered := make([]File, 0, len(names))
	rest := make([]string, 0, len(names))

	for _, name := range names {
		f := ParseFile(name)
		if f.Numbered {
			numbered = append(numbered, f)
		} else {
			rest = append(rest, name)
		}
	}

	sort.SliceStable(numbered, func(i, j int) bool {
		return numbered[i].Index < numbered[j].Index
	})
	sort.Strings(rest)

	out := make([]string, 0, len(names))
	for _, f := range numbered {
		out = append(out, f.Name)
	}
	out = append(out, rest...)

	return out
}

// Streams returns the channel-stream entries of names, preserving order.
func Streams(names []string) []string {
	return filterExt(names, StreamExt)
}

// Events returns the event-stream entries of names, preserving order.
func Events(names []string) []string {
	return filterExt(names, EventExt)
}

// OutputName maps a channel-stream file name to its converted output file
// name by swapping the extension, e.g. "CSC1.ncs" -> "CSC1.mat".
func OutputName(streamName string) string {
	return strings.TrimSuffix(streamName, StreamExt) + OutputExt
}

func filterExt(names []string, ext string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, ext) {
			out = append(out, name)
		}
	}

	return out
}
