// Package ber reads and writes ASN.1 BER/DER (ITU-T X.690) encoded objects
// at the TLV framing level.
//
// The central type is Reader, which pulls bounded chunks from an arbitrary
// byte source and assembles exactly one complete top-level encoded object at
// a time, including any nested indefinite-length constructions and their
// end-of-contents markers. The fully buffered object is handed to the caller
// as a raw byte slice; interpreting the content octets is left to higher
// layers.
//
// ParseHeader and the Encoder cover the pure framing primitives: identifier
// octets (including the high-tag-number form), definite short/long form
// lengths, and the indefinite-length marker. All parsing is bounds-checked
// against adversarial input; decoded lengths are capped well below the
// integer range so they can be added to buffer offsets without overflow.
package ber
