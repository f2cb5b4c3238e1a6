// Package flag provides phantom boolean type parameters that select one
// generic instantiation per flag combination, the Go stand-in for the
// original C++ source's non-type template bool parameters
// (FUSE_RELU, HAS_BIAS, A_SYMMETRIC, B_SYMMETRIC, PER_CHANNEL_QUANTIZATION).
package flag

// Bool is implemented by True and False; a generic function parameterized
// over a Bool type argument is a distinct instantiation per argument at the
// language level. True and False share the underlying type struct{}, so the
// gc compiler may compile such instantiations to one shared body, in which
// Value() is a call through the instantiation's dictionary rather than a
// compile-time constant.
type Bool interface {
	Value() bool
}

// True is the Bool type argument selecting the "flag set" instantiation.
type True struct{}

func (True) Value() bool { return true }

// False is the Bool type argument selecting the "flag unset" instantiation.
type False struct{}

func (False) Value() bool { return false }
