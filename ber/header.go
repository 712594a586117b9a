package ber

import "github.com/pkg/errors"

// ParseHeader parses one TLV identifier and length field from the front of
// buf, returning the header and the number of bytes consumed.
//
// Most failures return a zero consumed count. ErrContentTooLong is the one
// soft failure: the header itself parsed cleanly but its declared content
// extends past buf, and both return values remain valid so the caller can
// either fetch the missing content or report the error precisely.
func ParseHeader(buf []byte, mode Mode) (Header, int, error) {
	var hdr Header
	if len(buf) == 0 {
		return hdr, 0, errors.Wrap(ErrTruncated, "missing identifier octet")
	}

	first := buf[0]
	hdr.Class = Class(first & classMask)
	hdr.Constructed = first&flagConstructed != 0
	n := 1

	tag := int(first & tagNumberMask)
	if tag == tagNumberMask {
		// High-tag-number form: base-128 continuation bytes, high bit set on
		// all but the last. Guard the accumulator before every shift.
		tag = 0
		for {
			if n >= len(buf) {
				return hdr, 0, errors.Wrap(ErrTruncated, "truncated high-tag-number form")
			}
			if tag > MaxTag>>7 {
				return hdr, 0, ErrTagOverflow
			}
			b := buf[n]
			if tag == 0 && b == longFormBit {
				// X.690 forbids an all-zero leading subsequent octet. Without
				// this check a run of 0x80 octets would accumulate nothing
				// and never trip the overflow guard.
				return hdr, 0, errors.Wrap(ErrMalformedHeader, "leading zero octet in high-tag-number form")
			}
			n++
			tag = tag<<7 | int(b&0x7F)
			if b&longFormBit == 0 {
				break
			}
		}
	}
	hdr.Tag = tag

	if hdr.Class == ClassUniversal && tag > MaxUniversalTag {
		return hdr, 0, errors.Wrapf(ErrMalformedHeader, "universal tag %d out of range", tag)
	}

	length, indefinite, ln, err := decodeLength(buf[n:], mode)
	if err != nil {
		return hdr, 0, err
	}
	n += ln

	if indefinite {
		if !hdr.Constructed {
			return hdr, 0, errors.Wrap(ErrMalformedHeader, "indefinite length on a primitive value")
		}
		hdr.Indefinite = true
		return hdr, n, nil
	}

	hdr.Length = length
	if length > len(buf)-n {
		return hdr, n, ErrContentTooLong
	}
	return hdr, n, nil
}
