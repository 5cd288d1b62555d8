package header

// Header is one channel's parsed header block: an ordered set of named
// scalar fields. Field order is the order of first insertion, which for
// decoded headers matches the field order of the header text; the
// aggregator relies on that order when it uses the first channel's field
// set as the reference catalog for a run.
type Header struct {
	names  []string
	values map[string]Value
}

// New creates an empty Header.
func New() *Header {
	return &Header{
		values: make(map[string]Value),
	}
}

// Set stores a field value. The first Set of a name defines its position in
// Names; setting an existing name overwrites the value in place.
func (h *Header) Set(name string, v Value) {
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = v
}

// Get returns the value of a field, or the absent Value if the header does
// not carry it.
func (h *Header) Get(name string) Value {
	return h.values[name]
}

// Has reports whether the header carries the field.
func (h *Header) Has(name string) bool {
	_, ok := h.values[name]
	return ok
}

// Names returns the field names in insertion order. The returned slice is
// owned by the Header.
func (h *Header) Names() []string {
	return h.names
}

// Len returns the number of fields.
func (h *Header) Len() int {
	return len(h.names)
}
