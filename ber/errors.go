package ber

import "github.com/pkg/errors"

var (
	// ErrTruncated is returned when the input ends mid-header or mid-content.
	ErrTruncated = errors.New("ber: truncated input")

	// ErrMalformedHeader is returned when an identifier or length encoding
	// is invalid.
	ErrMalformedHeader = errors.New("ber: malformed header")

	// ErrLengthTooLarge is returned when a decoded length exceeds MaxLength.
	ErrLengthTooLarge = errors.New("ber: length exceeds safe bound")

	// ErrContentTooLong reports that a header parsed cleanly but its declared
	// content extends past the caller's window. Unlike the other failures the
	// header and consumed count returned alongside it are valid, which lets a
	// streaming caller fetch the missing content and lets a whole-buffer
	// caller report a precise error past the header.
	ErrContentTooLong = errors.New("ber: content extends past object bound")

	// ErrTagOverflow is returned when a high-tag-number accumulation would
	// exceed MaxTag.
	ErrTagOverflow = errors.New("ber: tag number overflow")

	// ErrUnexpectedIndefinite is returned when the indefinite-length marker
	// appears in a definite-only (DER) parse.
	ErrUnexpectedIndefinite = errors.New("ber: indefinite length not permitted")

	// ErrObjectTooLarge is returned when assembling an object would exceed
	// the reader's configured size limit.
	ErrObjectTooLarge = errors.New("ber: object exceeds configured size limit")

	// ErrSourceStalled is returned when the byte source keeps returning no
	// data and no error while bytes are still owed.
	ErrSourceStalled = errors.New("ber: byte source stalled")

	// ErrSinkStalled is returned when a sink accepts no bytes without
	// reporting an error.
	ErrSinkStalled = errors.New("ber: sink made no progress")

	// ErrInvalidHeader is returned by the encoder for header fields that
	// cannot be represented on the wire.
	ErrInvalidHeader = errors.New("ber: invalid header field")
)
