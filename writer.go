// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"bufio"
	"io"
	"strconv"

	"github.com/db47h/vcd/internal/text"
	"github.com/db47h/vcd/sink"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

type varKey struct {
	scope, name string
}

// A Writer writes a Value Change Dump.
//
// A new Writer is registering: variables can be added with Register. The first
// change at a timestamp past the starting one, or a call to Flush, writes the
// definitions and initial values and ends registration. After Close, every
// call but Close fails with ErrPhase.
//
// Checks are done before any state change: a failed call leaves the writer
// as it was.
//
type Writer struct {
	out    *bufio.Writer
	dst    io.Writer
	closer io.Closer // owned destination
	werr   error     // first write error
	log    commonlog.Logger

	header    *Header // nil once written
	sep       string
	scopeType ScopeType

	ts          uint64
	registering bool
	suspended   bool
	closed      bool

	scopes scopes
	vars   []*Var
	byKey  map[varKey]*Var

	// last recorded change record per variable id
	last     []string
	tracked  []bool
	nTracked int
}

// New returns a new Writer that writes to dst. A nil header is replaced by
// DefaultHeader(). The Writer does not close dst; if dst has a Flush method,
// Flush calls it.
//
func New(dst io.Writer, h *Header, opts ...Option) (*Writer, error) {
	if dst == nil {
		return nil, typeErrorf("nil destination")
	}
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	if !c.scopeType.valid() {
		return nil, typeErrorf("invalid scope type %d", int(c.scopeType))
	}
	if h == nil {
		h = DefaultHeader()
	}
	if c.log == nil {
		c.log = commonlog.GetLogger("vcd")
	}
	return &Writer{
		out:         bufio.NewWriter(dst),
		dst:         dst,
		log:         c.log,
		header:      h,
		sep:         c.sep,
		scopeType:   c.scopeType,
		ts:          c.timestamp,
		registering: true,
		suspended:   c.dumpOff,
		byKey:       make(map[varKey]*Var),
	}, nil
}

// NewOwned is like New, but the Writer takes ownership of dst and closes it
// exactly once, on Close.
//
func NewOwned(dst io.WriteCloser, h *Header, opts ...Option) (*Writer, error) {
	w, err := New(dst, h, opts...)
	if err != nil {
		return nil, err
	}
	w.closer = dst
	return w, nil
}

// Create creates the named file and returns a Writer that owns it. The file
// is compressed according to the WithCompression option.
//
func Create(path string, h *Header, opts ...Option) (*Writer, error) {
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	f, err := sink.Create(path, c.compression)
	if err != nil {
		return nil, err
	}
	w, err := NewOwned(f, h, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Dump creates the named file, calls fn with a Writer for it and closes the
// Writer when fn returns or panics. The returned error is the one returned by
// fn, or the error from closing the writer.
//
func Dump(path string, h *Header, fn func(w *Writer) error, opts ...Option) (err error) {
	w, err := Create(path, h, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(w)
}

// Timestamp returns the current timestamp.
//
func (w *Writer) Timestamp() uint64 { return w.ts }

// Registering reports whether variables can still be registered.
//
func (w *Writer) Registering() bool { return w.registering && !w.closed }

// Suspended reports whether dumping is suspended by DumpOff.
//
func (w *Writer) Suspended() bool { return w.suspended }

// Closed reports whether the writer has been closed.
//
func (w *Writer) Closed() bool { return w.closed }

func (w *Writer) checkRegistering(op string) error {
	if w.closed {
		return phaseErrorf("cannot %s after close", op)
	}
	if !w.registering {
		return phaseErrorf("cannot %s: registration finished", op)
	}
	return nil
}

// SetDefaultScopeType sets the type of scopes created by subsequent calls to
// Register. It fails once registration is over.
//
func (w *Writer) SetDefaultScopeType(t ScopeType) error {
	if err := w.checkRegistering("set default scope type"); err != nil {
		return err
	}
	if !t.valid() {
		return typeErrorf("invalid scope type %d", int(t))
	}
	w.scopeType = t
	return nil
}

// SetScopeSeparator sets the scope name separator. It fails once
// registration is over.
//
func (w *Writer) SetScopeSeparator(sep string) error {
	if err := w.checkRegistering("set scope separator"); err != nil {
		return err
	}
	if sep == "" {
		return typeErrorf("empty scope separator")
	}
	w.sep = sep
	return nil
}

// SetScopeType sets the type of the named scope.
//
func (w *Writer) SetScopeType(name string, t ScopeType) error {
	i, ok := w.scopes.lookup(name)
	if !ok {
		return phaseErrorf("scope %q does not exist", name)
	}
	if !t.valid() {
		return typeErrorf("invalid scope type %d", int(t))
	}
	w.scopes.list[i].typ = t
	return nil
}

// Register registers a new variable named name in the given scope and returns
// it. A width of 0 selects the default width for the integer, realtime, real,
// string and event types; other types require an explicit width.
//
func (w *Writer) Register(scope, name string, typ VarType, width int, opts ...RegisterOption) (*Var, error) {
	if err := w.checkRegistering("register " + strconv.Quote(name)); err != nil {
		return nil, err
	}
	if scope == "" || name == "" {
		return nil, typeErrorf("empty scope %q or name %q", scope, name)
	}
	c := registerConfig{init: Undef, dupCheck: true}
	for _, o := range opts {
		o(&c)
	}
	enc, width, err := resolve(typ, width)
	if err != nil {
		return nil, errors.WithMessage(err, "var "+strconv.Quote(name))
	}
	key := varKey{scope, name}
	if _, ok := w.byKey[key]; ok && c.dupCheck {
		return nil, typeErrorf("duplicate var %q in scope %q", name, scope)
	}
	var rec string
	if typ != Event {
		rec, err = enc.encode(enc.initial(c.init, width), width)
		if err != nil {
			return nil, errors.WithMessage(err, "initial value of "+strconv.Quote(name))
		}
	}

	si, ok := w.scopes.lookup(scope)
	if !ok {
		si = w.scopes.add(scope, w.scopeType)
	}
	id := len(w.vars)
	v := &Var{
		id:    id,
		ident: strconv.FormatInt(int64(id), 16),
		typ:   typ,
		width: width,
		name:  name,
		scope: si,
		enc:   enc,
	}
	w.vars = append(w.vars, v)
	w.byKey[key] = v
	w.scopes.list[si].vars = append(w.scopes.list[si].vars, v)
	w.last = append(w.last, rec)
	w.tracked = append(w.tracked, typ != Event)
	if typ != Event {
		w.nTracked++
	}
	return v, nil
}

// Var returns the variable registered with the given scope and name.
//
func (w *Writer) Var(scope, name string) (*Var, error) {
	v, ok := w.byKey[varKey{scope, name}]
	if !ok {
		return nil, phaseErrorf("var %q in scope %q does not exist", name, scope)
	}
	return v, nil
}

// Scope returns the name of the scope v belongs to.
//
func (w *Writer) Scope(v *Var) string {
	if !w.owns(v) {
		return ""
	}
	return w.scopes.list[v.scope].name
}

func (w *Writer) owns(v *Var) bool {
	return v != nil && v.id < len(w.vars) && w.vars[v.id] == v
}

func (w *Writer) checkTime(t uint64, op string) error {
	if w.closed {
		return phaseErrorf("cannot %s after close", op)
	}
	if t < w.ts {
		return phaseErrorf("cannot %s at %d: current timestamp is %d", op, t, w.ts)
	}
	return nil
}

// Change sets the value of v at timestamp t, which must not be less than the
// current timestamp. Changes to several variables at the same timestamp are
// done with several calls. It reports whether the value differs from the one
// previously recorded; unchanged values are not written.
//
func (w *Writer) Change(v *Var, t uint64, value string) (bool, error) {
	if err := w.checkTime(t, "change value"); err != nil {
		return false, err
	}
	if !w.owns(v) {
		return false, typeErrorf("unknown variable")
	}
	rec, err := v.enc.encode(value, v.width)
	if err != nil {
		return false, errors.WithMessage(err, "var "+strconv.Quote(v.name))
	}
	w.advance(t)
	if w.tracked[v.id] && w.last[v.id] == rec {
		return false, w.werr
	}
	if !w.tracked[v.id] {
		w.tracked[v.id] = true
		w.nTracked++
	}
	w.last[v.id] = rec
	if !w.registering && !w.suspended {
		w.line(rec + v.ident)
	}
	return true, w.werr
}

// ChangeByName is like Change for the variable with the given scope and name.
//
func (w *Writer) ChangeByName(scope, name string, t uint64, value string) (bool, error) {
	if w.closed {
		return false, phaseErrorf("cannot change value after close")
	}
	v, err := w.Var(scope, name)
	if err != nil {
		return false, err
	}
	return w.Change(v, t, value)
}

// advance moves time forward to t, ending registration if needed.
func (w *Writer) advance(t uint64) {
	if t <= w.ts {
		return
	}
	if w.registering {
		w.finalize()
	}
	if !w.suspended {
		w.timestamp(t)
	}
	w.ts = t
}

// DumpOff suspends dumping at timestamp t. Unless registering or already
// suspended, all variables are restated as undefined, except reals.
//
func (w *Writer) DumpOff(t uint64) error {
	if err := w.checkTime(t, "dump off"); err != nil {
		return err
	}
	if !w.registering {
		if !w.suspended && w.nTracked > 0 {
			w.dumpOff(t)
		}
		w.ts = t
	}
	w.suspended = true
	return w.werr
}

// DumpOn resumes dumping at timestamp t. Unless registering or not suspended,
// the current value of all variables is restated.
//
func (w *Writer) DumpOn(t uint64) error {
	if err := w.checkTime(t, "dump on"); err != nil {
		return err
	}
	if !w.registering {
		if w.suspended && w.nTracked > 0 {
			w.timestamp(t)
			w.dumpValues("$dumpon")
		}
		w.ts = t
	}
	w.suspended = false
	return w.werr
}

// Flush writes the definitions if not done already and flushes buffered data
// to the destination.
//
func (w *Writer) Flush() error { return w.flush(nil) }

// FlushAt is like Flush, but writes a time marker for t first when t is past
// the current timestamp.
//
func (w *Writer) FlushAt(t uint64) error { return w.flush(&t) }

func (w *Writer) flush(t *uint64) error {
	if w.closed {
		return phaseErrorf("cannot flush after close")
	}
	if w.registering {
		w.finalize()
	}
	if t != nil && *t > w.ts {
		w.timestamp(*t)
		w.ts = *t
	}
	if w.werr != nil {
		return w.werr
	}
	if err := w.out.Flush(); err != nil {
		w.werr = errors.Wrap(err, "flush")
		return w.werr
	}
	if f, ok := w.dst.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return errors.Wrap(err, "flush")
		}
	}
	return nil
}

// Close flushes the writer and closes it. An owned destination is closed even
// if flushing fails. Closing a closed writer does nothing.
//
func (w *Writer) Close() error { return w.close(nil) }

// CloseAt is like Close, but writes a time marker for t first when t is past
// the current timestamp.
//
func (w *Writer) CloseAt(t uint64) error { return w.close(&t) }

func (w *Writer) close(t *uint64) error {
	if w.closed {
		return nil
	}
	err := w.flush(t)
	w.closed = true
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close")
		}
		w.closer = nil
	}
	w.log.Debugf("closed at #%d, %d variables", w.ts, len(w.vars))
	return err
}

// finalize writes the header, the definitions and the initial values, then
// ends registration. It runs once.
//
func (w *Writer) finalize() {
	for _, s := range w.header.sections() {
		if s[1] == "" {
			continue
		}
		w.line(s[0] + " " + text.Continuation(s[1]) + " $end")
	}
	w.writeScopes()
	w.line("$enddefinitions $end")
	if w.nTracked > 0 {
		w.timestamp(w.ts)
		w.dumpValues("$dumpvars")
		if w.suspended {
			w.dumpOff(w.ts)
		}
	}
	w.header = nil
	w.registering = false
	w.log.Debugf("definitions written: %d scopes, %d variables", len(w.scopes.list), len(w.vars))
}

func (w *Writer) dumpValues(keyword string) {
	w.line(keyword)
	for _, v := range w.vars {
		if w.tracked[v.id] {
			w.line(w.last[v.id] + v.ident)
		}
	}
	w.line("$end")
}

func (w *Writer) dumpOff(t uint64) {
	w.timestamp(t)
	w.line("$dumpoff")
	for _, v := range w.vars {
		if !w.tracked[v.id] {
			continue
		}
		if rec, ok := v.enc.undefined(); ok {
			w.line(rec + v.ident)
		}
	}
	w.line("$end")
}

func (w *Writer) timestamp(t uint64) {
	w.line("#" + strconv.FormatUint(t, 10))
}

func (w *Writer) line(s string) {
	if w.werr != nil {
		return
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.werr = errors.Wrap(err, "write")
		return
	}
	if err := w.out.WriteByte('\n'); err != nil {
		w.werr = errors.Wrap(err, "write")
	}
}
