package main

import (
	"github.com/db47h/vcd"
	"github.com/db47h/vcd/sink"
	"github.com/spf13/cobra"
)

func newCounterCmd() *cobra.Command {
	var (
		output   string
		steps    uint64
		compress string
	)
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Dump two free running 8 bit counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := sink.ParseCompression(compress)
			if err != nil {
				return err
			}
			return counter(output, steps, c)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "dump.vcd", "output file")
	cmd.Flags().Uint64Var(&steps, "steps", 256, "number of time steps")
	cmd.Flags().StringVar(&compress, "compress", "", "output compression (none, gzip, zstd, lz4); guessed from the file extension if empty")
	return cmd
}

// counter dumps a.b.c.counter counting up from 0 and a.b.var counting down
// from 255, one step per time unit.
func counter(output string, steps uint64, c sink.Compression) error {
	h, err := vcd.NewHeader(vcd.TS1, vcd.NS, "", "counter demo", "vcdgen")
	if err != nil {
		return err
	}
	err = vcd.Dump(output, h, func(w *vcd.Writer) error {
		up, err := w.Register("a.b.c", "counter", vcd.Integer, 8)
		if err != nil {
			return err
		}
		down, err := w.Register("a.b", "var", vcd.Integer, 8)
		if err != nil {
			return err
		}
		for t := uint64(0); t < steps; t++ {
			if _, err = w.Change(up, t, vcd.Bits(t, 8)); err != nil {
				return err
			}
			if _, err = w.Change(down, t, vcd.Bits(255-t, 8)); err != nil {
				return err
			}
		}
		return nil
	}, vcd.WithCompression(c))
	if err == nil {
		log.Infof("wrote %d steps to %s", steps, output)
	}
	return err
}
