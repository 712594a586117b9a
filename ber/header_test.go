package ber

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		mode Mode
		hdr  Header
		n    int
		err  error
	}{
		{
			"primitive integer",
			[]byte{0x02, 0x01, 0x05},
			ModeBER,
			Header{Class: ClassUniversal, Tag: 0x02, Length: 1},
			2, nil,
		},
		{
			"constructed sequence",
			[]byte{0x30, 0x03, 0x01, 0x01, 0xFF},
			ModeBER,
			Header{Class: ClassUniversal, Tag: 0x10, Constructed: true, Length: 3},
			2, nil,
		},
		{
			"context-specific empty",
			[]byte{0xA0, 0x00},
			ModeBER,
			Header{Class: ClassContextSpecific, Tag: 0, Constructed: true, Length: 0},
			2, nil,
		},
		{
			"high tag number",
			[]byte{0x5F, 0x81, 0x00, 0x01, 0xAA},
			ModeBER,
			Header{Class: ClassApplication, Tag: 128, Length: 1},
			4, nil,
		},
		{
			"long form length",
			[]byte{0x04, 0x82, 0x01, 0x00},
			ModeBER,
			Header{Class: ClassUniversal, Tag: 0x04, Length: 256},
			4, ErrContentTooLong,
		},
		{
			"indefinite constructed",
			[]byte{0x30, 0x80},
			ModeBER,
			Header{Class: ClassUniversal, Tag: 0x10, Constructed: true, Indefinite: true},
			2, nil,
		},
		{
			"end of contents",
			[]byte{0x00, 0x00},
			ModeBER,
			Header{Class: ClassUniversal, Tag: TagEndOfContents},
			2, nil,
		},
		{
			"indefinite rejected in DER",
			[]byte{0x30, 0x80},
			ModeDER,
			Header{}, 0, ErrUnexpectedIndefinite,
		},
		{
			"indefinite on primitive",
			[]byte{0x04, 0x80},
			ModeBER,
			Header{}, 0, ErrMalformedHeader,
		},
		{
			"reserved universal tag",
			[]byte{0x1F, 0x82, 0x00, 0x00},
			ModeBER,
			Header{}, 0, ErrMalformedHeader,
		},
		{
			"leading zero in high tag number",
			[]byte{0x1F, 0x80, 0x01, 0x00},
			ModeBER,
			Header{}, 0, ErrMalformedHeader,
		},
		{
			"tag overflow",
			[]byte{0xDF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F, 0x00},
			ModeBER,
			Header{}, 0, ErrTagOverflow,
		},
		{
			"empty window",
			nil,
			ModeBER,
			Header{}, 0, ErrTruncated,
		},
		{
			"truncated high tag number",
			[]byte{0x1F, 0x81},
			ModeBER,
			Header{}, 0, ErrTruncated,
		},
		{
			"missing length octet",
			[]byte{0x30},
			ModeBER,
			Header{}, 0, ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr, n, err := ParseHeader(tt.in, tt.mode)
			if tt.err != nil && !errors.Is(tt.err, ErrContentTooLong) {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.err), "got %v, want %v", err, tt.err)
				return
			}
			if tt.err != nil {
				// Soft failure: header and consumed count stay valid.
				require.True(t, errors.Is(err, ErrContentTooLong))
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.hdr, hdr)
			require.Equal(t, tt.n, n)
		})
	}
}

func TestParseHeader_ContentTooLongAdvancesPastHeader(t *testing.T) {
	// Declares two content bytes but the window holds one.
	in := []byte{0x02, 0x02, 0x05}
	hdr, n, err := ParseHeader(in, ModeBER)
	require.True(t, errors.Is(err, ErrContentTooLong))
	require.Equal(t, 2, n)
	require.Equal(t, 2, hdr.Length)
	require.Equal(t, ClassUniversal, hdr.Class)
}

func TestHeader_IsEndOfContents(t *testing.T) {
	hdr, _, err := ParseHeader([]byte{0x00, 0x00}, ModeBER)
	require.NoError(t, err)
	require.True(t, hdr.IsEndOfContents())

	hdr, _, err = ParseHeader([]byte{0x05, 0x00}, ModeBER)
	require.NoError(t, err)
	require.False(t, hdr.IsEndOfContents())
}
