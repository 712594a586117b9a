package ber

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

const (
	// headerSizeGuess is how many bytes are fetched ahead of each header
	// parse. Large enough for any realistic identifier and length pair; the
	// parse loop widens the window if a header turns out longer.
	headerSizeGuess = 8

	// maxHeaderSize bounds the widening header window. One identifier
	// octet, five base-128 tag octets for the widest legal tag, and a
	// length field of up to nine octets.
	maxHeaderSize = 15

	// initialChunkSize is the starting size for chunked content reads.
	// Content is fetched in chunks of doubling size so a lying length field
	// on a truncated stream cannot force the full declared allocation up
	// front, while long objects still take O(log n) read bursts.
	initialChunkSize = 16 * 1024

	maxChunkSize = math.MaxInt32 / 2

	// DefaultMaxObjectSize caps one assembled object when ReaderOpts does
	// not say otherwise.
	DefaultMaxObjectSize = MaxLength

	// DefaultMaxZeroReads bounds how many consecutive empty reads the
	// reader tolerates from a source that reports no error.
	DefaultMaxZeroReads = 100
)

// ReaderOpts tunes a Reader. The zero value selects the defaults.
type ReaderOpts struct {
	// MaxObjectSize caps the total byte size of one encoded object,
	// header octets included.
	MaxObjectSize int
	// InitialChunkSize overrides the starting content chunk size.
	InitialChunkSize int
	// MaxZeroReads overrides the consecutive empty-read bound.
	MaxZeroReads int
	// Strict rejects indefinite-length values anywhere in the stream,
	// restricting input to DER framing.
	Strict bool
}

// Reader assembles complete top-level BER objects from a byte stream.
//
// A Reader owns its accumulation buffer exclusively while an object is in
// flight; ownership of the returned bytes passes to the caller on success.
// Each source needs its own Reader, and a single Reader must not be shared
// across goroutines, but independent Readers are safe to run concurrently.
type Reader struct {
	src           io.Reader
	maxObjectSize int
	initialChunk  int
	maxZeroReads  int
	mode          Mode

	// leftover holds bytes read past the end of the previous object so
	// back-to-back objects on one stream survive the header lookahead.
	leftover []byte

	// lastGrows records the buffer reallocation count of the most recent
	// read, for growth-behavior tests.
	lastGrows int
}

// NewReader returns a Reader over src with default options.
func NewReader(src io.Reader) *Reader {
	return NewReaderWithOpts(src, &ReaderOpts{})
}

// NewReaderWithOpts returns a Reader over src tuned by opts.
func NewReaderWithOpts(src io.Reader, opts *ReaderOpts) *Reader {
	r := &Reader{
		src:           src,
		maxObjectSize: opts.MaxObjectSize,
		initialChunk:  opts.InitialChunkSize,
		maxZeroReads:  opts.MaxZeroReads,
	}
	if r.maxObjectSize <= 0 || r.maxObjectSize > MaxLength {
		r.maxObjectSize = DefaultMaxObjectSize
	}
	if r.initialChunk <= 0 {
		r.initialChunk = initialChunkSize
	}
	if r.maxZeroReads <= 0 {
		r.maxZeroReads = DefaultMaxZeroReads
	}
	if opts.Strict {
		r.mode = ModeDER
	}
	return r
}

// readState is the transient state for one top-level read. It is created per
// ReadObject call and discarded on both success and failure.
type readState struct {
	buf growBuffer
	n   int // bytes read into buf
	off int // bytes consumed by completed headers and content

	// pendingEOC counts indefinite-length constructions still awaiting
	// their end-of-contents marker at the current point.
	pendingEOC int

	zeroReads int
	eof       bool
}

func (s *readState) available() int {
	return s.n - s.off
}

// Reader state machine states.
type readPhase int

const (
	phaseNeedHeader readPhase = iota
	phaseNeedContent
	phaseDone
)

// ReadObject reads exactly one complete top-level object from the source,
// including any nested indefinite-length sub-objects and their terminating
// markers, and returns its raw encoded bytes. The returned slice is owned by
// the caller.
//
// A source that is cleanly exhausted at an object boundary reports io.EOF.
// A source that ends while bytes are still owed reports ErrTruncated.
func (r *Reader) ReadObject() ([]byte, error) {
	st := &readState{}
	if len(r.leftover) > 0 {
		st.buf.ensure(len(r.leftover))
		copy(st.buf.data, r.leftover)
		st.n = len(r.leftover)
	}
	r.leftover = nil

	err := r.readObject(st)
	r.lastGrows = st.buf.grows
	if err != nil {
		return nil, err
	}
	if rest := st.buf.data[st.off:st.n]; len(rest) > 0 {
		r.leftover = append([]byte(nil), rest...)
	}
	return st.buf.data[:st.off], nil
}

func (r *Reader) readObject(st *readState) error {
	phase := phaseNeedHeader
	var contentLen int

	for phase != phaseDone {
		switch phase {
		case phaseNeedHeader:
			hdr, hn, err := r.nextHeader(st)
			if err != nil {
				return err
			}
			if hn > r.maxObjectSize-st.off {
				return errors.Wrapf(ErrObjectTooLarge, "limit %d bytes", r.maxObjectSize)
			}
			st.off += hn

			switch {
			case st.pendingEOC > 0 && hdr.IsEndOfContents():
				st.pendingEOC--
				if st.pendingEOC == 0 {
					phase = phaseDone
				}
			case hdr.Indefinite:
				// No content to skip yet; the nested objects follow as
				// ordinary headers.
				st.pendingEOC++
			default:
				contentLen = hdr.Length
				phase = phaseNeedContent
			}

		case phaseNeedContent:
			if err := r.fillContent(st, contentLen); err != nil {
				return err
			}
			st.off += contentLen
			if st.pendingEOC == 0 {
				phase = phaseDone
			} else {
				phase = phaseNeedHeader
			}
		}
	}
	return nil
}

// nextHeader buffers enough of the stream to parse one header at the current
// offset. Declared content past the buffered window is not an error here;
// the content phase fetches it.
func (r *Reader) nextHeader(st *readState) (Header, int, error) {
	want := headerSizeGuess
	for {
		if err := r.fill(st, want); err != nil {
			return Header{}, 0, err
		}
		hdr, hn, err := ParseHeader(st.buf.data[st.off:st.n], r.mode)
		switch {
		case err == nil || errors.Is(err, ErrContentTooLong):
			return hdr, hn, nil
		case errors.Is(err, ErrTruncated):
			if st.eof {
				if st.off == 0 && st.available() == 0 {
					return Header{}, 0, io.EOF
				}
				return Header{}, 0, err
			}
			// The buffered window is shorter than the header. Widen by at
			// least one byte and reparse. No legal header is wider than
			// maxHeaderSize, so a window that keeps coming up short is
			// malformed rather than merely unlucky.
			want = st.available() + 1
			if want > maxHeaderSize {
				return Header{}, 0, errors.Wrapf(ErrMalformedHeader, "header exceeds %d bytes", maxHeaderSize)
			}
		default:
			return Header{}, 0, err
		}
	}
}

// fill reads from the source until at least want unconsumed bytes are
// buffered or the source is exhausted. It returns nil on a short fill ending
// in EOF; callers decide whether that is a clean boundary.
func (r *Reader) fill(st *readState, want int) error {
	for st.available() < want && !st.eof {
		target := st.off + want
		st.buf.ensure(target)
		n, err := r.src.Read(st.buf.data[st.n:target])
		if n > 0 {
			st.n += n
			st.zeroReads = 0
		} else if err == nil {
			st.zeroReads++
			if st.zeroReads >= r.maxZeroReads {
				return errors.Wrapf(ErrSourceStalled, "%d consecutive empty reads", st.zeroReads)
			}
		}
		if err == io.EOF {
			st.eof = true
		} else if err != nil {
			return errors.Wrap(err, "ber: error reading from source")
		}
	}
	return nil
}

// fillContent buffers length content bytes beyond the current offset,
// growing in doubling chunks rather than allocating the declared length up
// front.
func (r *Reader) fillContent(st *readState, length int) error {
	if length > r.maxObjectSize-st.off {
		return errors.Wrapf(ErrObjectTooLarge, "content of %d bytes at offset %d exceeds limit %d",
			length, st.off, r.maxObjectSize)
	}
	chunkMax := r.initialChunk
	for st.available() < length {
		if st.eof {
			return errors.Wrapf(ErrTruncated, "source ended with %d content bytes owed", length-st.available())
		}
		chunk := length - st.available()
		if chunk > chunkMax {
			chunk = chunkMax
		}
		target := st.n + chunk
		st.buf.ensure(target)
		for st.n < target {
			n, err := r.src.Read(st.buf.data[st.n:target])
			if n > 0 {
				st.n += n
				st.zeroReads = 0
			} else if err == nil {
				st.zeroReads++
				if st.zeroReads >= r.maxZeroReads {
					return errors.Wrapf(ErrSourceStalled, "%d consecutive empty reads", st.zeroReads)
				}
			}
			if err == io.EOF {
				st.eof = true
				if st.n < target {
					return errors.Wrapf(ErrTruncated, "source ended with %d content bytes owed", length-st.available())
				}
			} else if err != nil {
				return errors.Wrap(err, "ber: error reading from source")
			}
		}
		if chunkMax < maxChunkSize {
			chunkMax *= 2
		}
	}
	return nil
}

// DecodeFunc consumes one fully buffered encoded object.
type DecodeFunc func(data []byte) error

// Decode reads a single object from src and hands its raw bytes to fn. On
// any read failure fn is never called and no partial object escapes.
func Decode(src io.Reader, fn DecodeFunc) error {
	obj, err := NewReader(src).ReadObject()
	if err != nil {
		return err
	}
	return fn(obj)
}
