package cmd

import (
	"io"
	"os"

	"bertlv/ber"
	"bertlv/log"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <input> <output>",
	Short: "Re-emits every top-level object from input to output. Use - for stdin/stdout.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader
		if args[0] == "-" {
			if isatty.IsTerminal(os.Stdin.Fd()) {
				return errors.New("refusing to read encoded data from a terminal")
			}
			in = os.Stdin
		} else {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "error opening input")
			}
			defer f.Close()
			in = f
		}

		var out io.Writer
		if args[1] == "-" {
			out = os.Stdout
		} else {
			f, err := os.OpenFile(args[1], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return errors.Wrap(err, "error opening output")
			}
			defer f.Close()
			out = f
		}

		count, err := copyObjects(in, out, readerOpts(cmd))
		if err != nil {
			return err
		}
		log.WithComponent("copy").Info("copy complete", "objects", count)
		return nil
	},
}

func copyObjects(in io.Reader, out io.Writer, opts *ber.ReaderOpts) (int, error) {
	lgr := log.WithComponent("copy")
	rd := ber.NewReaderWithOpts(in, opts)
	count := 0
	for {
		obj, err := rd.ReadObject()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, errors.Wrapf(err, "error reading object %d", count)
		}
		if err := ber.WriteObject(out, obj); err != nil {
			return count, errors.Wrapf(err, "error writing object %d", count)
		}
		lgr.Debug("copied object", "size", len(obj))
		count++
	}
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
