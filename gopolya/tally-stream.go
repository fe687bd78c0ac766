package gopolya

import (
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// TallyStream is a stage of a Tally pipeline.
// Each stage runs in its own goroutine and closes its Outlet once its input is drained.
type TallyStream struct {
	Outlet chan *Tally

	errMu sync.Mutex
	err   error
}

func NewTallyStream() *TallyStream {
	stream := &TallyStream{
		Outlet: make(chan *Tally, 1),
	}
	return stream
}

// Err returns the first error encountered by this stage or any stage upstream of it.
// It is only meaningful after Outlet has been closed.
func (stream *TallyStream) Err() error {
	stream.errMu.Lock()
	defer stream.errMu.Unlock()
	return stream.err
}

func (stream *TallyStream) fail(err error) {
	if err == nil {
		return
	}
	stream.errMu.Lock()
	if stream.err == nil {
		stream.err = err
	}
	stream.errMu.Unlock()
}

func (stream *TallyStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// PullAll drains this stream, returning the number of tallies received and the stream's error (if any).
func (stream *TallyStream) PullAll() (int, error) {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count, stream.Err()
}

// EnumTallies emits an uncounted Tally (with Group assigned) for each domain size in [nMin, nMax].
func EnumTallies(src TallySource, nMin, nMax, colors int) *TallyStream {
	next := NewTallyStream()

	go func() {
		for n := nMin; n <= nMax; n++ {
			G, err := src.Group(n)
			if err != nil {
				next.fail(errors.Wrapf(err, "%s(%d)", src.Name(), n))
				break
			}
			next.Outlet <- &Tally{
				TallyKey: TallyKey{
					Action:     src.Name(),
					DomainSize: n,
					Colors:     colors,
				},
				Order: G.Order(),
				Group: G,
			}
		}
		next.Close()
	}()

	return next
}

// FillFrom assigns the counts of each incoming Tally found in the given catalog.
func (stream *TallyStream) FillFrom(cat Catalog) *TallyStream {
	next := NewTallyStream()

	go func() {
		for T := range stream.Outlet {
			if T.Orbits == nil {
				if hit, found := cat.Lookup(T.TallyKey); found {
					T.Order = hit.Order
					T.Orbits = hit.Orbits
					T.Asymmetric = hit.Asymmetric
				}
			}
			next.Outlet <- T
		}
		next.fail(stream.Err())
		next.Close()
	}()

	return next
}

// Count calls count() for each incoming Tally that has not been counted yet.
// After the first error, remaining tallies are drained and dropped.
func (stream *TallyStream) Count(count func(T *Tally) error) *TallyStream {
	next := NewTallyStream()

	go func() {
		failed := false
		for T := range stream.Outlet {
			if failed {
				continue
			}
			if T.Orbits == nil || T.Asymmetric == nil {
				if err := count(T); err != nil {
					next.fail(err)
					failed = true
					continue
				}
			}
			next.Outlet <- T
		}
		next.fail(stream.Err())
		next.Close()
	}()

	return next
}

// AddTo offers each incoming Tally to the given target and passes every Tally through.
func (stream *TallyStream) AddTo(target TallyAdder) *TallyStream {
	next := NewTallyStream()

	go func() {
		for T := range stream.Outlet {
			target.TryAddTally(T)
			next.Outlet <- T
		}
		next.fail(stream.Err())
		next.Close()
	}()

	return next
}

// Print writes a row for each incoming Tally to out and passes every Tally through.
func (stream *TallyStream) Print(
	out io.Writer,
	opts PrintOpts) *TallyStream {

	next := NewTallyStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		if opts.Header {
			WriteHeader(out, opts)
		}

		for T := range stream.Outlet {
			T.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			io.WriteString(out, buf.String())
			buf.Reset()
			next.Outlet <- T
		}
		next.fail(stream.Err())
		next.Close()
	}()

	return next
}
