/*
Package vcd writes Value Change Dump files, the textual trace format read by
waveform viewers such as GTKWave.

A Writer goes through three phases. While registering, variables are declared
with Register and grouped into hierarchical scopes whose nesting is given by a
separator in the scope name ("top.cpu.alu"). The first value change at a later
timestamp (or an explicit Flush) ends registration: the header, the scope
hierarchy and the initial values are written out once. The writer then dumps
value changes, skipping the ones that do not change the recorded value, until
it is closed.

	h, err := vcd.NewHeader(vcd.TS1, vcd.NS, "", "", "")
	if err != nil {
		return err
	}
	w, err := vcd.Create("dump.vcd", h)
	if err != nil {
		return err
	}
	defer w.Close()
	clk, err := w.Register("top", "clk", vcd.Wire, 1)
	if err != nil {
		return err
	}
	for t := uint64(0); t < 10; t++ {
		if _, err := w.Change(clk, t, vcd.Bits(t&1, 1)); err != nil {
			return err
		}
	}

A Writer is not safe for concurrent use.
*/
package vcd
