package ber

import "github.com/pkg/errors"

// Encoder builds BER-encoded objects into an in-memory buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an Encoder with an optional initial capacity.
func NewEncoder(capacity int) *Encoder {
	if capacity <= 0 {
		capacity = 64
	}
	return &Encoder{
		buf: make([]byte, 0, capacity),
	}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of encoded data.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset clears the buffer for reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// WriteHeader appends the identifier and length octets for hdr. Tags above
// 30 use the high-tag-number form; lengths above 127 use the long form. An
// indefinite Header emits the 0x80 marker and must later be closed with
// EndOfContents.
func (e *Encoder) WriteHeader(hdr Header) error {
	switch hdr.Class {
	case ClassUniversal, ClassApplication, ClassContextSpecific, ClassPrivate:
	default:
		return errors.Wrapf(ErrInvalidHeader, "class %#x", uint8(hdr.Class))
	}
	if hdr.Tag < 0 || hdr.Tag > MaxTag {
		return errors.Wrapf(ErrInvalidHeader, "tag %d", hdr.Tag)
	}
	if hdr.Indefinite && !hdr.Constructed {
		return errors.Wrap(ErrInvalidHeader, "indefinite length on a primitive value")
	}
	if hdr.Length < 0 || hdr.Length > MaxLength {
		return errors.Wrapf(ErrInvalidHeader, "length %d", hdr.Length)
	}

	first := byte(hdr.Class)
	if hdr.Constructed {
		first |= flagConstructed
	}
	if hdr.Tag < tagNumberMask {
		e.buf = append(e.buf, first|byte(hdr.Tag))
	} else {
		e.buf = append(e.buf, first|tagNumberMask)
		e.writeBase128(hdr.Tag)
	}

	if hdr.Indefinite {
		e.buf = append(e.buf, longFormBit)
		return nil
	}
	e.writeLength(hdr.Length)
	return nil
}

// writeBase128 appends v in base-128 with continuation bits on all but the
// last octet.
func (e *Encoder) writeBase128(v int) {
	var octets []byte
	for v > 0 {
		octets = append(octets, byte(v&0x7F))
		v >>= 7
	}
	if len(octets) == 0 {
		octets = []byte{0}
	}
	for i := len(octets) - 1; i >= 0; i-- {
		b := octets[i]
		if i > 0 {
			b |= longFormBit
		}
		e.buf = append(e.buf, b)
	}
}

// writeLength appends a definite length in the minimal form.
func (e *Encoder) writeLength(length int) {
	if length <= 0x7F {
		e.buf = append(e.buf, byte(length))
		return
	}
	count := 0
	for v := length; v > 0; v >>= 8 {
		count++
	}
	e.buf = append(e.buf, byte(longFormBit|count))
	for i := count - 1; i >= 0; i-- {
		e.buf = append(e.buf, byte(length>>(8*i)))
	}
}

// WriteBytes appends raw content octets.
func (e *Encoder) WriteBytes(p []byte) {
	e.buf = append(e.buf, p...)
}

// EndOfContents appends the marker closing an indefinite-length value.
func (e *Encoder) EndOfContents() {
	e.buf = append(e.buf, 0x00, 0x00)
}

// EncodeObject encodes one definite-length object from hdr and its content
// octets. The Length field of hdr is ignored; the content determines it.
func EncodeObject(hdr Header, content []byte) ([]byte, error) {
	hdr.Indefinite = false
	hdr.Length = len(content)
	e := NewEncoder(len(content) + 8)
	if err := e.WriteHeader(hdr); err != nil {
		return nil, err
	}
	e.WriteBytes(content)
	return e.Bytes(), nil
}
