package main

import (
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/db47h/vcd"
	"github.com/db47h/vcd/internal/text"
	"github.com/db47h/vcd/sink"
	"github.com/pkg/errors"
)

// scenario is a TOML description of a dump: the header, the variables and the
// sequence of operations to apply.
type scenario struct {
	Output   string        `toml:"output"`
	Compress string        `toml:"compress"`
	Header   headerConfig  `toml:"header"`
	Writer   writerConfig  `toml:"writer"`
	Scopes   []scopeConfig `toml:"scope"`
	Vars     []varConfig   `toml:"var"`
	Steps    []stepConfig  `toml:"step"`
}

type headerConfig struct {
	Timescale string `toml:"timescale"`
	Date      string `toml:"date"`
	Comment   string `toml:"comment"`
	Version   string `toml:"version"`
}

type writerConfig struct {
	Timestamp int64  `toml:"timestamp"`
	ScopeType string `toml:"scope_type"`
	Separator string `toml:"separator"`
	DumpOff   bool   `toml:"dump_off"`
}

type scopeConfig struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type varConfig struct {
	Scope string  `toml:"scope"`
	Name  string  `toml:"name"`
	Type  string  `toml:"type"`
	Width int64   `toml:"width"`
	Init  *string `toml:"init"`
}

type stepConfig struct {
	At     int64  `toml:"at"`
	Action string `toml:"action"`
	Scope  string `toml:"scope"`
	Name   string `toml:"name"`
	Value  string `toml:"value"`
}

func loadScenario(path string) (*scenario, error) {
	var sc scenario
	meta, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if !meta.IsDefined("output") || strings.TrimSpace(sc.Output) == "" {
		return nil, errors.Errorf("%s: missing output", path)
	}
	if !filepath.IsAbs(sc.Output) {
		sc.Output = filepath.Join(filepath.Dir(path), sc.Output)
	}
	return &sc, nil
}

func (sc *scenario) header() (*vcd.Header, error) {
	ts := sc.Header.Timescale
	if ts == "" {
		ts = "1 ns"
	}
	scale, unit, err := vcd.ParseTimescale(ts)
	if err != nil {
		return nil, err
	}
	date := sc.Header.Date
	if date == "" {
		date = text.Now()
	}
	return vcd.NewHeader(scale, unit, date, sc.Header.Comment, sc.Header.Version)
}

func (sc *scenario) options() ([]vcd.Option, error) {
	var opts []vcd.Option
	c, err := sink.ParseCompression(sc.Compress)
	if err != nil {
		return nil, err
	}
	opts = append(opts, vcd.WithCompression(c))
	ts, err := safecast.Conv[uint64](sc.Writer.Timestamp)
	if err != nil {
		return nil, errors.Wrap(err, "writer.timestamp")
	}
	opts = append(opts, vcd.WithTimestamp(ts))
	if sc.Writer.ScopeType != "" {
		st, err := vcd.ParseScopeType(sc.Writer.ScopeType)
		if err != nil {
			return nil, err
		}
		opts = append(opts, vcd.WithScopeType(st))
	}
	if sc.Writer.Separator != "" {
		opts = append(opts, vcd.WithScopeSeparator(sc.Writer.Separator))
	}
	if sc.Writer.DumpOff {
		opts = append(opts, vcd.WithDumpOff())
	}
	return opts, nil
}

// render writes the scenario output file.
func (sc *scenario) render() error {
	h, err := sc.header()
	if err != nil {
		return err
	}
	opts, err := sc.options()
	if err != nil {
		return err
	}
	return vcd.Dump(sc.Output, h, sc.play, opts...)
}

// play registers the scenario variables into w and applies its steps.
func (sc *scenario) play(w *vcd.Writer) error {
	for i, v := range sc.Vars {
		typ := vcd.Integer
		if v.Type != "" {
			var err error
			if typ, err = vcd.ParseVarType(v.Type); err != nil {
				return errors.WithMessagef(err, "var #%d", i+1)
			}
		}
		width, err := safecast.Conv[int](v.Width)
		if err != nil {
			return errors.Wrapf(err, "var #%d width", i+1)
		}
		var opts []vcd.RegisterOption
		if v.Init != nil {
			opts = append(opts, vcd.Init(*v.Init))
		}
		if _, err := w.Register(v.Scope, v.Name, typ, width, opts...); err != nil {
			return errors.WithMessagef(err, "var #%d", i+1)
		}
	}
	for _, s := range sc.Scopes {
		st, err := vcd.ParseScopeType(s.Type)
		if err != nil {
			return errors.WithMessagef(err, "scope %q", s.Name)
		}
		if err := w.SetScopeType(s.Name, st); err != nil {
			return err
		}
	}
	for i, s := range sc.Steps {
		if err := step(w, s); err != nil {
			return errors.WithMessagef(err, "step #%d", i+1)
		}
	}
	return nil
}

func step(w *vcd.Writer, s stepConfig) error {
	at, err := safecast.Conv[uint64](s.At)
	if err != nil {
		return errors.Wrap(err, "at")
	}
	switch strings.ToLower(s.Action) {
	case "", "change":
		_, err = w.ChangeByName(s.Scope, s.Name, at, s.Value)
	case "dumpoff":
		err = w.DumpOff(at)
	case "dumpon":
		err = w.DumpOn(at)
	case "flush":
		err = w.FlushAt(at)
	default:
		err = errors.Errorf("unknown action %q", s.Action)
	}
	return err
}
