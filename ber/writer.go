package ber

import (
	"io"

	"github.com/pkg/errors"
)

// WriteObject writes an encoded object to w in full, retrying partial
// writes. A write that accepts no bytes without reporting an error is
// terminal and surfaces ErrSinkStalled.
func WriteObject(w io.Writer, data []byte) error {
	off := 0
	for off < len(data) {
		n, err := w.Write(data[off:])
		if n > 0 {
			off += n
		}
		if err != nil {
			return errors.Wrap(err, "ber: error writing object")
		}
		if n <= 0 {
			return errors.Wrapf(ErrSinkStalled, "%d of %d bytes written", off, len(data))
		}
	}
	return nil
}
