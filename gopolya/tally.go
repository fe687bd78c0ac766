package gopolya

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
)

// TallyKeySz is the byte length of a TallyKey encoding after the action name and its NUL terminator.
const TallyKeySz = 8

// AppendKey appends a canonical binary encoding of this key to []out.
//
// Keys sort by action name, then domain size, then colors, so a prefix scan over one action visits
// its tallies in ascending domain size.
func (key TallyKey) AppendKey(out []byte) []byte {
	out = key.AppendActionPrefix(out)
	n := uint32(key.DomainSize)
	k := uint32(key.Colors)
	return append(out,
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
		byte(k>>24),
		byte(k>>16),
		byte(k>>8),
		byte(k),
	)
}

// AppendActionPrefix appends the key prefix shared by all tallies of this key's action.
func (key TallyKey) AppendActionPrefix(out []byte) []byte {
	out = append(out, key.Action...)
	return append(out, 0)
}

// InitFromKey assigns this key from an encoding made by AppendKey()
func (key *TallyKey) InitFromKey(in []byte) error {
	nul := bytes.IndexByte(in, 0)
	if nul < 0 || len(in)-nul-1 != TallyKeySz {
		*key = TallyKey{}
		return ErrUnmarshal
	}
	b := in[nul+1:]
	key.Action = string(in[:nul])
	key.DomainSize = int(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
	key.Colors = int(uint32(b[4])<<24 | uint32(b[5])<<16 | uint32(b[6])<<8 | uint32(b[7]))
	return nil
}

func (key TallyKey) WriteAsString(out io.Writer) {
	fmt.Fprintf(out, "%s-%d-k%d", key.Action, key.DomainSize, key.Colors)
}

// WriteAsString writes this Tally as a single report row (no newline).
func (T *Tally) WriteAsString(out io.Writer, opts PrintOpts) {
	if len(opts.Label) > 0 {
		fmt.Fprintf(out, "%s ", opts.Label)
	}
	fmt.Fprintf(out, "%d", T.DomainSize)
	if opts.Order {
		fmt.Fprintf(out, " %d", T.Order)
	}
	if opts.Asymmetric {
		fmt.Fprintf(out, " %v", bigOrZero(T.Asymmetric))
	}
	fmt.Fprintf(out, " %v %v", T.AsymmetricOrbits(), bigOrZero(T.Orbits))
}

// WriteHeader writes the column names matching WriteAsString() for the given opts.
func WriteHeader(out io.Writer, opts PrintOpts) {
	if len(opts.Label) > 0 {
		io.WriteString(out, "# label ")
	} else {
		io.WriteString(out, "# ")
	}
	io.WriteString(out, "n")
	if opts.Order {
		io.WriteString(out, " order")
	}
	if opts.Asymmetric {
		io.WriteString(out, " asymmetric")
	}
	io.WriteString(out, " asymmetric_orbits orbits\n")
}

func bigOrZero(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x
}
