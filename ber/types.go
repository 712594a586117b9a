package ber

import "math"

// Class is the tag class of a BER value, stored in the top two bits of the
// identifier octet.
type Class uint8

const (
	ClassUniversal       Class = 0x00
	ClassApplication     Class = 0x40
	ClassContextSpecific Class = 0x80
	ClassPrivate         Class = 0xC0
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "universal"
	case ClassApplication:
		return "application"
	case ClassContextSpecific:
		return "context-specific"
	case ClassPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Mode selects which length encodings a parse accepts.
type Mode int

const (
	// ModeBER permits the indefinite-length form.
	ModeBER Mode = iota
	// ModeDER rejects the indefinite-length form as malformed.
	ModeDER
)

const (
	// TagEndOfContents is the universal tag number of the end-of-contents
	// marker that closes an indefinite-length value.
	TagEndOfContents = 0x00

	// MaxUniversalTag is the largest tag number accepted in the universal
	// class. Downstream ASN.1 layers reserve larger universal tag values for
	// internal sentinels, so untrusted input must never produce them.
	MaxUniversalTag = 0xFF

	// MaxTag is the largest tag number representable by a Header.
	MaxTag = math.MaxInt32

	// MaxLength bounds decoded content lengths. The headroom below the int32
	// range keeps length-plus-offset arithmetic free of overflow.
	MaxLength = math.MaxInt32 / 2
)

// Identifier octet layout.
const (
	classMask       = 0xC0
	flagConstructed = 0x20
	tagNumberMask   = 0x1F
	longFormBit     = 0x80
)

// Header is one parsed TLV identifier plus length.
type Header struct {
	Class       Class
	Tag         int
	Constructed bool
	// Indefinite marks an indefinite-length value. Length is zero and the
	// content octets run until a matching end-of-contents marker.
	Indefinite bool
	Length     int
}

// IsEndOfContents reports whether h is the marker closing an
// indefinite-length value.
func (h Header) IsEndOfContents() bool {
	return h.Class == ClassUniversal && h.Tag == TagEndOfContents &&
		!h.Constructed && !h.Indefinite && h.Length == 0
}
