package matfile

import (
	"fmt"
	"math"
	"os"
	"time"
	"unicode/utf16"

	"github.com/klauspost/compress/zlib"

	"github.com/ephys-tools/ncs2mat/endian"
	"github.com/ephys-tools/ncs2mat/errs"
	"github.com/ephys-tools/ncs2mat/internal/pool"
)

// Mat5Encoder writes MAT-file level 5 containers. Every top-level variable
// is assembled as one matrix element in memory, zlib-compressed and
// appended to the file, so output size stays close to what the samples
// compress to.
type Mat5Encoder struct {
	engine endian.EndianEngine
}

// NewMat5Encoder creates the level 5 encoder. The container is always
// written little-endian.
func NewMat5Encoder() *Mat5Encoder {
	return &Mat5Encoder{engine: endian.GetLittleEndianEngine()}
}

// Encode writes vars into one .mat file at path.
func (e *Mat5Encoder) Encode(path string, vars []Var) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := e.encodeTo(f, vars); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}

func (e *Mat5Encoder) encodeTo(f *os.File, vars []Var) error {
	if _, err := f.Write(e.fileHeader()); err != nil {
		return err
	}

	scratch := pool.GetElementBuffer()
	defer pool.PutElementBuffer(scratch)
	compressed := pool.GetElementBuffer()
	defer pool.PutElementBuffer(compressed)

	for _, v := range vars {
		scratch.Reset()
		body, err := e.appendMatrix(scratch.Bytes(), v.Name, v.Value)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}
		scratch.B = body

		compressed.Reset()
		zw := zlib.NewWriter(compressed)
		if _, err := zw.Write(scratch.B); err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}

		var tag [8]byte
		e.engine.PutUint32(tag[0:4], uint32(MiCompressed))
		e.engine.PutUint32(tag[4:8], uint32(compressed.Len()))
		if _, err := f.Write(tag[:]); err != nil {
			return err
		}
		if _, err := compressed.WriteTo(f); err != nil {
			return err
		}
	}

	return nil
}

// fileHeader builds the 128-byte descriptive header: text, subsystem
// offset, version word and endian indicator.
func (e *Mat5Encoder) fileHeader() []byte {
	h := make([]byte, headerSize)
	for i := range h[:116] {
		h[i] = ' '
	}

	desc := fmt.Sprintf("MATLAB 5.0 MAT-file, created by ncs2mat on %s",
		time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	copy(h[:116], desc)

	// bytes 116-123 stay zero: no subsystem-specific data
	e.engine.PutUint16(h[124:126], headerVersion)
	e.engine.PutUint16(h[126:128], headerEndian)

	return h
}

// appendMatrix appends one full miMATRIX element for value, with the given
// array name (empty for cell and struct members). The element size is
// backfilled once the content length is known.
func (e *Mat5Encoder) appendMatrix(b []byte, name string, value Value) ([]byte, error) {
	start := len(b)
	b = e.appendTag(b, MiMatrix, 0)

	var err error
	switch a := value.(type) {
	case *Numeric:
		if err = checkDims(a.Rows, a.Cols, len(a.Data)); err != nil {
			break
		}
		b = e.appendArrayHeader(b, MxDouble, false, a.Rows, a.Cols, name)
		b = e.appendTag(b, MiDouble, uint32(8*len(a.Data)))
		for _, v := range a.Data {
			b = e.engine.AppendUint64(b, math.Float64bits(v))
		}

	case *Ints:
		if err = checkDims(a.Rows, a.Cols, len(a.Data)); err != nil {
			break
		}
		b = e.appendArrayHeader(b, MxInt32, false, a.Rows, a.Cols, name)
		b = e.appendTag(b, MiInt32, uint32(4*len(a.Data)))
		for _, v := range a.Data {
			b = e.engine.AppendUint32(b, uint32(v))
		}
		b = pad8(b)

	case *Longs:
		if err = checkDims(a.Rows, a.Cols, len(a.Data)); err != nil {
			break
		}
		b = e.appendArrayHeader(b, MxInt64, false, a.Rows, a.Cols, name)
		b = e.appendTag(b, MiInt64, uint32(8*len(a.Data)))
		for _, v := range a.Data {
			b = e.engine.AppendUint64(b, uint64(v))
		}

	case *Uints:
		if err = checkDims(a.Rows, a.Cols, len(a.Data)); err != nil {
			break
		}
		b = e.appendArrayHeader(b, MxUint64, false, a.Rows, a.Cols, name)
		b = e.appendTag(b, MiUint64, uint32(8*len(a.Data)))
		for _, v := range a.Data {
			b = e.engine.AppendUint64(b, v)
		}

	case *Logicals:
		if err = checkDims(a.Rows, a.Cols, len(a.Data)); err != nil {
			break
		}
		b = e.appendArrayHeader(b, MxUint8, true, a.Rows, a.Cols, name)
		b = e.appendTag(b, MiUint8, uint32(len(a.Data)))
		for _, v := range a.Data {
			if v {
				b = append(b, 1)
			} else {
				b = append(b, 0)
			}
		}
		b = pad8(b)

	case *Char:
		units := utf16.Encode([]rune(a.Text))
		rows, cols := 1, len(units)
		if cols == 0 {
			rows = 0
		}
		b = e.appendArrayHeader(b, MxChar, false, rows, cols, name)
		b = e.appendTag(b, MiUint16, uint32(2*len(units)))
		for _, u := range units {
			b = e.engine.AppendUint16(b, u)
		}
		b = pad8(b)

	case *CellColumn:
		rows := len(a.Elems)
		cols := 1
		if rows == 0 {
			cols = 0
		}
		b = e.appendArrayHeader(b, MxCell, false, rows, cols, name)
		for i, elem := range a.Elems {
			if b, err = e.appendMatrix(b, "", elem); err != nil {
				err = fmt.Errorf("cell %d: %w", i, err)
				break
			}
		}

	case *Struct:
		b = e.appendArrayHeader(b, MxStruct, false, 1, 1, name)
		b, err = e.appendStructFields(b, a)

	default:
		err = fmt.Errorf("unsupported value type %T", value)
	}
	if err != nil {
		return nil, err
	}

	e.engine.PutUint32(b[start+4:start+8], uint32(len(b)-start-8))

	return b, nil
}

// appendStructFields appends the struct-specific sub-elements: the field
// name length, the packed 32-byte field name slots, then one unnamed matrix
// element per field in insertion order.
func (e *Mat5Encoder) appendStructFields(b []byte, s *Struct) ([]byte, error) {
	var nameLen [4]byte
	e.engine.PutUint32(nameLen[:], maxFieldNameLen+1)
	b = e.appendElement(b, MiInt32, nameLen[:])

	names := make([]byte, 0, (maxFieldNameLen+1)*len(s.Names()))
	for _, name := range s.Names() {
		if len(name) > maxFieldNameLen {
			return nil, fmt.Errorf("field %q: %w", name, errs.ErrFieldNameTooLong)
		}
		var slot [maxFieldNameLen + 1]byte
		copy(slot[:], name)
		names = append(names, slot[:]...)
	}
	b = e.appendElement(b, MiInt8, names)

	for _, name := range s.Names() {
		var err error
		if b, err = e.appendMatrix(b, "", s.Get(name)); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}

	return b, nil
}

// appendArrayHeader appends the array flags, dimensions and name
// sub-elements shared by every array class.
func (e *Mat5Encoder) appendArrayHeader(b []byte, class ArrayClass, logical bool, rows, cols int, name string) []byte {
	flags := uint32(class)
	if logical {
		flags |= flagLogical
	}
	b = e.appendTag(b, MiUint32, 8)
	b = e.engine.AppendUint32(b, flags)
	b = e.engine.AppendUint32(b, 0)

	b = e.appendTag(b, MiInt32, 8)
	b = e.engine.AppendUint32(b, uint32(rows))
	b = e.engine.AppendUint32(b, uint32(cols))

	return e.appendElement(b, MiInt8, []byte(name))
}

// appendElement appends a data element, using the packed small-element form
// when the payload fits the 4-byte inline slot.
func (e *Mat5Encoder) appendElement(b []byte, typ DataType, data []byte) []byte {
	n := len(data)
	if n > 0 && n <= 4 {
		b = e.engine.AppendUint32(b, uint32(n)<<16|uint32(typ))
		b = append(b, data...)

		return pad8(b)
	}

	b = e.appendTag(b, typ, uint32(n))
	b = append(b, data...)

	return pad8(b)
}

func (e *Mat5Encoder) appendTag(b []byte, typ DataType, size uint32) []byte {
	b = e.engine.AppendUint32(b, uint32(typ))

	return e.engine.AppendUint32(b, size)
}

func pad8(b []byte) []byte {
	for len(b)%8 != 0 {
		b = append(b, 0)
	}

	return b
}

func checkDims(rows, cols, n int) error {
	if rows*cols != n {
		return fmt.Errorf("dimensions %dx%d do not match %d values", rows, cols, n)
	}

	return nil
}
