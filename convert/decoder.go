package convert

import (
	"github.com/ephys-tools/ncs2mat/channel"
	"github.com/ephys-tools/ncs2mat/header"
)

// HeaderDecoder is the collaborator that decodes only the header block of a
// stream file. The pipeline itself obtains headers through ReadChannel;
// this narrower surface serves header-only inspection tooling.
type HeaderDecoder interface {
	ReadHeader(dir, name string) (*header.Header, error)
}

// ChannelDecoder is the collaborator that decodes one channel-stream file
// into samples, header fields and block timestamps. The rescale flag asks
// for samples in volts rather than raw AD counts.
type ChannelDecoder interface {
	ReadChannel(path string, rescale bool) (*channel.Record, error)
}

// EventDecoder is the collaborator that decodes the recording's event
// stream into (timestamp, TTL) pairs.
type EventDecoder interface {
	ReadEvents(dir, name string) ([][2]int64, error)
}
