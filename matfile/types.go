package matfile

type (
	// DataType is a MAT-file level 5 data type tag ("mi" type).
	DataType uint32
	// ArrayClass is a MAT-file level 5 array class ("mx" class).
	ArrayClass uint32
)

// Data type tags of the level 5 container.
const (
	MiInt8       DataType = 1  // 8-bit signed
	MiUint8      DataType = 2  // 8-bit unsigned
	MiInt16      DataType = 3  // 16-bit signed
	MiUint16     DataType = 4  // 16-bit unsigned
	MiInt32      DataType = 5  // 32-bit signed
	MiUint32     DataType = 6  // 32-bit unsigned
	MiSingle     DataType = 7  // IEEE 754 single precision
	MiDouble     DataType = 9  // IEEE 754 double precision
	MiInt64      DataType = 12 // 64-bit signed
	MiUint64     DataType = 13 // 64-bit unsigned
	MiMatrix     DataType = 14 // container element holding one array
	MiCompressed DataType = 15 // zlib-compressed element
	MiUTF8       DataType = 16 // UTF-8 text
	MiUTF16      DataType = 17 // UTF-16 text
)

// Array classes of the level 5 container.
const (
	MxCell   ArrayClass = 1
	MxStruct ArrayClass = 2
	MxObject ArrayClass = 3
	MxChar   ArrayClass = 4
	MxSparse ArrayClass = 5
	MxDouble ArrayClass = 6
	MxSingle ArrayClass = 7
	MxInt8   ArrayClass = 8
	MxUint8  ArrayClass = 9
	MxInt16  ArrayClass = 10
	MxUint16 ArrayClass = 11
	MxInt32  ArrayClass = 12
	MxUint32 ArrayClass = 13
	MxInt64  ArrayClass = 14
	MxUint64 ArrayClass = 15
)

// flagLogical marks an array as logical in the array-flags word.
const flagLogical = 0x0200

// headerSize is the fixed size of the level 5 descriptive file header.
const headerSize = 128

// version and endian indicator words at the tail of the file header.
const (
	headerVersion = 0x0100
	// headerEndian reads back as "MI" on a machine of matching byte order;
	// written little-endian it appears in the file as the bytes 'I', 'M'.
	headerEndian = 0x4D49
)

// maxFieldNameLen is the longest struct field name the container allows,
// excluding the terminating NUL of its fixed 32-byte slot.
const maxFieldNameLen = 31
