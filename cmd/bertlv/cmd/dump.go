package cmd

import (
	"encoding/hex"
	"io"
	"os"
	"strconv"

	"bertlv/ber"
	"bertlv/log"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

type objectRow struct {
	source string
	offset int
	hdr    ber.Header
	size   int
	digest string
}

var dumpCmd = &cobra.Command{
	Use:   "dump [files]",
	Short: "Prints a summary of every top-level object in the input.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := readerOpts(cmd)

		if len(args) == 0 {
			if isatty.IsTerminal(os.Stdin.Fd()) {
				return errors.New("refusing to read encoded data from a terminal - pipe input in or pass file paths")
			}
			rows, err := dumpStream("stdin", os.Stdin, opts)
			if err != nil {
				return err
			}
			renderRows(os.Stdout, rows)
			return nil
		}

		// One reader per file; readers never share state, so files can be
		// decoded concurrently.
		results := make([][]objectRow, len(args))
		var group errgroup.Group
		for i, p := range args {
			i, p := i, p
			group.Go(func() error {
				f, err := os.Open(p)
				if err != nil {
					return errors.Wrap(err, "error opening input")
				}
				defer f.Close()
				rows, err := dumpStream(p, f, opts)
				if err != nil {
					return errors.Wrapf(err, "error dumping %s", p)
				}
				results[i] = rows
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}

		var rows []objectRow
		for _, fileRows := range results {
			rows = append(rows, fileRows...)
		}
		renderRows(os.Stdout, rows)
		return nil
	},
}

func dumpStream(name string, r io.Reader, opts *ber.ReaderOpts) ([]objectRow, error) {
	lgr := log.WithComponent("dump")
	rd := ber.NewReaderWithOpts(r, opts)
	var rows []objectRow
	off := 0
	for {
		obj, err := rd.ReadObject()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		hdr, _, err := ber.ParseHeader(obj, ber.ModeBER)
		if err != nil {
			return nil, err
		}
		digest := blake2b.Sum256(obj)
		rows = append(rows, objectRow{
			source: name,
			offset: off,
			hdr:    hdr,
			size:   len(obj),
			digest: hex.EncodeToString(digest[:8]),
		})
		lgr.Debug("decoded object", "source", name, "offset", off, "size", len(obj))
		off += len(obj)
	}
	return rows, nil
}

func renderRows(w io.Writer, rows []objectRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Source",
		"Offset",
		"Class",
		"Tag",
		"Form",
		"Size",
		"Digest",
	})
	for _, row := range rows {
		form := "primitive"
		if row.hdr.Indefinite {
			form = "indefinite"
		} else if row.hdr.Constructed {
			form = "constructed"
		}
		table.Append([]string{
			row.source,
			strconv.Itoa(row.offset),
			row.hdr.Class.String(),
			strconv.Itoa(row.hdr.Tag),
			form,
			strconv.Itoa(row.size),
			row.digest,
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
