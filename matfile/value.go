package matfile

// Value is one array value storable in an output file. The set of
// implementations is closed; the encoder switches over it exhaustively.
type Value interface {
	isValue()
}

// Numeric is a real double-precision matrix. Data is column-major and must
// hold Rows*Cols entries.
type Numeric struct {
	Rows, Cols int
	Data       []float64
}

// Ints is a 32-bit signed integer matrix, column-major.
type Ints struct {
	Rows, Cols int
	Data       []int32
}

// Longs is a 64-bit signed integer matrix, column-major. Used where values
// may exceed the 32-bit range, e.g. event timestamps.
type Longs struct {
	Rows, Cols int
	Data       []int64
}

// Uints is a 64-bit unsigned integer matrix, column-major. Used for block
// timestamp vectors, whose microsecond values must not lose precision.
type Uints struct {
	Rows, Cols int
	Data       []uint64
}

// Logicals is a boolean matrix, column-major.
type Logicals struct {
	Rows, Cols int
	Data       []bool
}

// Char is a single row of text.
type Char struct {
	Text string
}

// CellColumn is an Nx1 cell array.
type CellColumn struct {
	Elems []Value
}

// Struct is a scalar (1x1) record with named fields in insertion order.
type Struct struct {
	names  []string
	fields map[string]Value
}

func (*Numeric) isValue()    {}
func (*Ints) isValue()       {}
func (*Longs) isValue()      {}
func (*Uints) isValue()      {}
func (*Logicals) isValue()   {}
func (*Char) isValue()       {}
func (*CellColumn) isValue() {}
func (*Struct) isValue()     {}

// Scalar returns a 1x1 double matrix.
func Scalar(v float64) *Numeric {
	return &Numeric{Rows: 1, Cols: 1, Data: []float64{v}}
}

// Column returns an Nx1 double matrix over data.
func Column(data []float64) *Numeric {
	return &Numeric{Rows: len(data), Cols: 1, Data: data}
}

// IntColumn returns an Nx1 32-bit integer matrix over data.
func IntColumn(data []int32) *Ints {
	return &Ints{Rows: len(data), Cols: 1, Data: data}
}

// IntRow returns a 1xN 32-bit integer matrix over data.
func IntRow(data []int32) *Ints {
	return &Ints{Rows: 1, Cols: len(data), Data: data}
}

// LongScalar returns a 1x1 64-bit integer matrix.
func LongScalar(v int64) *Longs {
	return &Longs{Rows: 1, Cols: 1, Data: []int64{v}}
}

// LongColumn returns an Nx1 64-bit integer matrix over data.
func LongColumn(data []int64) *Longs {
	return &Longs{Rows: len(data), Cols: 1, Data: data}
}

// UintRow returns a 1xN 64-bit unsigned matrix over data.
func UintRow(data []uint64) *Uints {
	return &Uints{Rows: 1, Cols: len(data), Data: data}
}

// LogicalScalar returns a 1x1 logical matrix.
func LogicalScalar(v bool) *Logicals {
	return &Logicals{Rows: 1, Cols: 1, Data: []bool{v}}
}

// LogicalColumn returns an Nx1 logical matrix over data.
func LogicalColumn(data []bool) *Logicals {
	return &Logicals{Rows: len(data), Cols: 1, Data: data}
}

// Text returns a single-row text value.
func Text(s string) *Char {
	return &Char{Text: s}
}

// TextCellColumn returns an Nx1 cell array of single-row text values.
func TextCellColumn(texts []string) *CellColumn {
	elems := make([]Value, len(texts))
	for i, s := range texts {
		elems[i] = Text(s)
	}

	return &CellColumn{Elems: elems}
}

// NewStruct creates an empty scalar struct.
func NewStruct() *Struct {
	return &Struct{fields: make(map[string]Value)}
}

// Set stores a field. The first Set of a name defines its position in the
// serialized field order; re-setting overwrites in place.
func (s *Struct) Set(name string, v Value) {
	if _, ok := s.fields[name]; !ok {
		s.names = append(s.names, name)
	}
	s.fields[name] = v
}

// Names returns the field names in insertion order.
func (s *Struct) Names() []string {
	return s.names
}

// Get returns a field value, or nil if absent.
func (s *Struct) Get(name string) Value {
	return s.fields[name]
}

// Var is one named top-level variable of an output file.
type Var struct {
	Name  string
	Value Value
}
