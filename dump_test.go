package vcd_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/vcd"
	"github.com/db47h/vcd/sink"
	"github.com/db47h/vcd/vcdtest"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWriter_DumpOff(t *testing.T) {
	w, buf := newWriter(t)
	v, err := w.Register("my_scope", "my_var", vcd.Wire, 2)
	require.NoError(t, err)
	_, err = w.Change(v, 10, "1")
	require.NoError(t, err)
	require.NoError(t, w.DumpOff(10))
	require.True(t, w.Suspended())
	changed, err := w.Change(v, 11, "1")
	require.NoError(t, err)
	require.False(t, changed)
	require.NoError(t, w.Flush())
	require.Equal(t, vcdtest.Lines(
		"#0",
		"$dumpvars",
		"bxx 0",
		"$end",
		"#10",
		"b01 0",
		"#10",
		"$dumpoff",
		"bx 0",
		"$end",
	), vcdtest.Body(buf.String()))
}

func TestWriter_DumpOn(t *testing.T) {
	w, buf := newWriter(t)
	v, err := w.Register("my_scope", "my_var", vcd.Wire, 3)
	require.NoError(t, err)
	_, err = w.Change(v, 10, "000")
	require.NoError(t, err)
	require.NoError(t, w.DumpOff(10))
	changed, err := w.Change(v, 10, "001")
	require.NoError(t, err)
	require.True(t, changed, "changes are tracked while suspended")
	require.NoError(t, w.DumpOff(11))
	require.NoError(t, w.DumpOn(11))
	require.False(t, w.Suspended())
	require.NoError(t, w.DumpOn(11))
	_, err = w.Change(v, 11, "011")
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	vcdtest.Equal(t, vcdtest.Body(buf.String()), vcdtest.Lines(
		"#0",
		"$dumpvars",
		"bxxx 0",
		"$end",
		"#10",
		"b000 0",
		"#10",
		"$dumpoff",
		"bx 0",
		"$end",
		"#11",
		"$dumpon",
		"b001 0",
		"$end",
		"b011 0",
	))
}

// no time marker is written before time advances past a DumpOff.
func TestWriter_DumpOffSameTimestamp(t *testing.T) {
	w, buf := newWriter(t)
	v, err := w.Register("s", "v", vcd.Wire, 1)
	require.NoError(t, err)
	_, err = w.Change(v, 1, "0")
	require.NoError(t, err)
	require.NoError(t, w.DumpOff(4))
	_, err = w.Change(v, 4, "1")
	require.NoError(t, err)
	require.NoError(t, w.DumpOn(6))
	require.NoError(t, w.Flush())
	require.Equal(t, vcdtest.Lines(
		"#0", "$dumpvars", "bx 0", "$end",
		"#1", "b0 0",
		"#4", "$dumpoff", "bx 0", "$end",
		"#6", "$dumpon", "b1 0", "$end",
	), vcdtest.Body(buf.String()))
}

func TestWriter_startSuspended(t *testing.T) {
	w, buf := newWriter(t, vcd.WithDumpOff(), vcd.WithTimestamp(100))
	require.True(t, w.Suspended())
	v, err := w.Register("s", "v", vcd.Wire, 1)
	require.NoError(t, err)
	r, err := w.Register("s", "r", vcd.Real, 0)
	require.NoError(t, err)
	_, err = w.Change(v, 50, "1")
	require.ErrorIs(t, err, vcd.ErrPhase)
	_, err = w.Change(v, 101, "1")
	require.NoError(t, err)
	_, err = w.Change(r, 102, "2.25")
	require.NoError(t, err)
	require.NoError(t, w.DumpOn(105))
	require.NoError(t, w.Close())
	vcdtest.Equal(t, vcdtest.Body(buf.String()), vcdtest.Lines(
		"#100",
		"$dumpvars",
		"bx 0",
		"r0 1",
		"$end",
		"#100",
		"$dumpoff",
		"bx 0",
		"$end",
		"#105",
		"$dumpon",
		"b1 0",
		"r2.25 1",
		"$end",
	))
}

func TestWriter_dumpWhileRegistering(t *testing.T) {
	w, buf := newWriter(t)
	v, err := w.Register("s", "v", vcd.Wire, 1)
	require.NoError(t, err)
	require.NoError(t, w.DumpOff(5))
	require.Equal(t, uint64(0), w.Timestamp(), "registering keeps the starting timestamp")
	require.NoError(t, w.DumpOn(5))
	require.NoError(t, w.DumpOff(5))
	_, err = w.Change(v, 7, "1")
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, "#0\n$dumpvars\nbx 0\n$end\n#0\n$dumpoff\nbx 0\n$end\n", vcdtest.Body(buf.String()))
}

func TestWriter_noVarsDumpOff(t *testing.T) {
	w, buf := newWriter(t)
	require.NoError(t, w.Flush())
	n := buf.Len()
	require.NoError(t, w.DumpOff(3))
	require.NoError(t, w.DumpOn(4))
	require.NoError(t, w.Flush())
	require.Equal(t, n, buf.Len())
}

func readAll(t *testing.T, path string, gz bool) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var r io.Reader = f
	if gz {
		zr, err := gzip.NewReader(f)
		require.NoError(t, err)
		defer zr.Close()
		r = zr
	}
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"plain.vcd", "packed.vcd.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			w, err := vcd.Create(path, nil)
			require.NoError(t, err)
			v, err := w.Register("top", "clk", vcd.Wire, 1)
			require.NoError(t, err)
			for ts := uint64(0); ts < 4; ts++ {
				_, err = w.Change(v, ts, vcd.Bits(ts&1, 1))
				require.NoError(t, err)
			}
			require.NoError(t, w.Close())
			require.NoError(t, w.Close())
			out := readAll(t, path, filepath.Ext(name) == ".gz")
			require.Equal(t, "#0\n$dumpvars\nb0 0\n$end\n#1\nb1 0\n#2\nb0 0\n#3\nb1 0\n", vcdtest.Body(out))
		})
	}
	_, err := vcd.Create(filepath.Join(dir, "missing", "x.vcd"), nil)
	require.Error(t, err)
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.vcd")
	errStop := errors.New("stop")
	err := vcd.Dump(path, nil, func(w *vcd.Writer) error {
		if _, err := w.Register("top", "v", vcd.Wire, 4); err != nil {
			return err
		}
		return errStop
	})
	require.Equal(t, errStop, err)
	require.Contains(t, readAll(t, path, false), "$enddefinitions $end\n#0\n$dumpvars\nbxxxx 0\n$end\n")

	path = filepath.Join(dir, "panic.vcd.gz")
	require.Panics(t, func() {
		vcd.Dump(path, nil, func(w *vcd.Writer) error {
			if _, err := w.Register("top", "v", vcd.Wire, 1); err != nil {
				return err
			}
			panic("boom")
		})
	})
	require.Contains(t, readAll(t, path, true), "$var wire 1 0 v $end\n")

	path = filepath.Join(dir, "explicit.lz")
	require.NoError(t, vcd.Dump(path, nil, func(w *vcd.Writer) error { return nil }, vcd.WithCompression(sink.Gzip)))
	require.Contains(t, readAll(t, path, true), "$enddefinitions $end\n")
}
