package neuralynx

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ephys-tools/ncs2mat/errs"
	"github.com/ephys-tools/ncs2mat/header"
)

// HeaderBlockSize is the fixed size of the ASCII header block at the start
// of every Neuralynx stream file.
const HeaderBlockSize = 16384

// Acquisition time fields are recorded as text; their parsed counterparts
// are stored alongside under the "_dt" internal suffix, keyed the way the
// downstream catalog expects them.
var timeFields = map[string]string{
	"TimeCreated": "TimeOpened_dt",
	"TimeClosed":  "TimeClosed_dt",
}

var timeLayouts = []string{
	"2006/01/02 15:04:05.999999",
	"2006/01/02 15:04:05",
}

// ReadFileHeader reads and parses the header block of the named stream file
// in dir.
func ReadFileHeader(dir, name string) (*header.Header, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	block := make([]byte, HeaderBlockSize)
	if _, err := io.ReadFull(f, block); err != nil {
		return nil, errs.ErrShortHeader
	}

	return ParseHeader(block), nil
}

// ParseHeader parses a raw header block into typed fields.
//
// Each header line starts with a dash followed by the field name and an
// optional value. Values are typed by shape: integers, floats and the
// True/False booleans are parsed, everything else stays text. The two
// acquisition time fields additionally yield parsed "_dt" companions.
func ParseHeader(block []byte) *header.Header {
	h := header.New()

	text := string(bytes.TrimRight(block, "\x00"))
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}

		name, rawValue, _ := strings.Cut(strings.TrimPrefix(line, "-"), " ")
		if name == "" {
			continue
		}
		rawValue = strings.TrimSpace(rawValue)

		h.Set(name, typedValue(rawValue))

		if dtName, ok := timeFields[name]; ok {
			if ts, ok := parseTime(rawValue); ok {
				h.Set(dtName, header.Time(ts))
			}
		}
	}

	return h
}

func typedValue(raw string) header.Value {
	if raw == "" {
		return header.Absent()
	}

	switch raw {
	case "True":
		return header.Bool(true)
	case "False":
		return header.Bool(false)
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return header.Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return header.Float(f)
	}

	return header.String(raw)
}

func parseTime(raw string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}
