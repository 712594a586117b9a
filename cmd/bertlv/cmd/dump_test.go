package cmd

import (
	"bytes"
	"testing"

	"bertlv/ber"

	"github.com/stretchr/testify/require"
)

func encodeTestObject(t *testing.T, hdr ber.Header, content []byte) []byte {
	t.Helper()
	data, err := ber.EncodeObject(hdr, content)
	require.NoError(t, err)
	return data
}

func TestDumpStream(t *testing.T) {
	first := encodeTestObject(t, ber.Header{Class: ber.ClassUniversal, Tag: 0x04}, []byte("abc"))
	second := encodeTestObject(t, ber.Header{Class: ber.ClassContextSpecific, Tag: 2, Constructed: true}, first)

	var stream bytes.Buffer
	stream.Write(first)
	stream.Write(second)

	rows, err := dumpStream("test", &stream, &ber.ReaderOpts{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "test", rows[0].source)
	require.Equal(t, 0, rows[0].offset)
	require.Equal(t, ber.ClassUniversal, rows[0].hdr.Class)
	require.Equal(t, len(first), rows[0].size)

	require.Equal(t, len(first), rows[1].offset)
	require.Equal(t, ber.ClassContextSpecific, rows[1].hdr.Class)
	require.True(t, rows[1].hdr.Constructed)
	require.NotEqual(t, rows[0].digest, rows[1].digest)
}

func TestDumpStream_Truncated(t *testing.T) {
	obj := encodeTestObject(t, ber.Header{Class: ber.ClassUniversal, Tag: 0x04}, []byte("abcdef"))
	_, err := dumpStream("test", bytes.NewReader(obj[:3]), &ber.ReaderOpts{})
	require.Error(t, err)
}

func TestCopyObjects(t *testing.T) {
	first := encodeTestObject(t, ber.Header{Class: ber.ClassUniversal, Tag: 0x02}, []byte{0x01})
	second := encodeTestObject(t, ber.Header{Class: ber.ClassUniversal, Tag: 0x04}, []byte("xyz"))

	var in bytes.Buffer
	in.Write(first)
	in.Write(second)

	var out bytes.Buffer
	count, err := copyObjects(&in, &out, &ber.ReaderOpts{})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	var expected bytes.Buffer
	expected.Write(first)
	expected.Write(second)
	require.Equal(t, expected.Bytes(), out.Bytes())
}

func TestRenderRows(t *testing.T) {
	rows := []objectRow{
		{
			source: "test",
			offset: 0,
			hdr:    ber.Header{Class: ber.ClassUniversal, Tag: 0x10, Constructed: true},
			size:   12,
			digest: "deadbeefdeadbeef",
		},
	}
	var out bytes.Buffer
	renderRows(&out, rows)
	require.Contains(t, out.String(), "universal")
	require.Contains(t, out.String(), "constructed")
	require.Contains(t, out.String(), "deadbeefdeadbeef")
}
