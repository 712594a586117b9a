package ber

import "github.com/pkg/errors"

// maxLengthOctets is the widest long-form length the decoder accepts; wider
// encodings cannot fit the accumulator.
const maxLengthOctets = 8

// decodeLength parses one BER length field from the front of buf. It returns
// the definite length, whether the field was the indefinite-length marker,
// and the number of bytes consumed. Indefinite lengths are only legal in
// ModeBER; ModeDER reports them as ErrUnexpectedIndefinite.
func decodeLength(buf []byte, mode Mode) (length int, indefinite bool, n int, err error) {
	if len(buf) == 0 {
		return 0, false, 0, errors.Wrap(ErrTruncated, "missing length octet")
	}
	first := buf[0]
	if first == longFormBit {
		if mode == ModeDER {
			return 0, false, 0, ErrUnexpectedIndefinite
		}
		return 0, true, 1, nil
	}
	if first&longFormBit == 0 {
		// Short form: the low seven bits are the length.
		return int(first), false, 1, nil
	}
	count := int(first & 0x7F)
	if count > maxLengthOctets {
		return 0, false, 0, errors.Wrapf(ErrLengthTooLarge, "%d length octets", count)
	}
	if count > len(buf)-1 {
		return 0, false, 0, errors.Wrapf(ErrTruncated, "need %d length octets, have %d", count, len(buf)-1)
	}
	var v uint64
	for i := 0; i < count; i++ {
		v = v<<8 | uint64(buf[1+i])
	}
	if v > MaxLength {
		return 0, false, 0, errors.Wrapf(ErrLengthTooLarge, "length %d", v)
	}
	return int(v), false, 1 + count, nil
}
