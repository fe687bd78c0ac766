package gopolya

import "errors"

// Errors
var (
	ErrUnmarshal         = errors.New("unmarshal failed")
	ErrBadCatalogParam   = errors.New("bad catalog param")
	ErrEmptyGroup        = errors.New("group has no elements")
	ErrBadDomainSize     = errors.New("bad domain size")
	ErrDomainMismatch    = errors.New("group element does not cover the group domain")
	ErrBadCycles         = errors.New("bad or overlapping cycles")
	ErrNotBijection      = errors.New("permutation is not a bijection")
	ErrMissingIdentity   = errors.New("group must contain exactly one identity element")
	ErrDuplicateElement  = errors.New("duplicate group element")
	ErrNotClosed         = errors.New("group is not closed under composition")
	ErrInexactBurnside   = errors.New("burnside sum not divisible by group order")
	ErrBadColorCount     = errors.New("color count must be positive")
	ErrGroupTooLarge     = errors.New("too many non-identity elements for subset enumeration")
	ErrBadExpr           = errors.New("bad group expression")
	ErrUnknownAction     = errors.New("unknown group action")
	ErrCatalogVersion    = errors.New("catalog version is incompatible")
	ErrCatalogIsReadOnly = errors.New("catalog is read-only")
)
