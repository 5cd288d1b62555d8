package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint32(nil, 0x04030201)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
	require.Equal(t, uint32(0x04030201), engine.Uint32(buf))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Equal(t, binary.BigEndian, engine)

	buf := engine.AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, buf)
}

func TestAppendUint64RoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	const ts = uint64(0x0123456789abcdef)
	buf := engine.AppendUint64(nil, ts)
	require.Len(t, buf, 8)
	require.Equal(t, ts, engine.Uint64(buf))
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)
	require.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
}
