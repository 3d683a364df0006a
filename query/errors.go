package query

import "errors"

// Soft build failures. Registration methods never fail; Build reports these.
var (
	ErrNoShape           = errors.New("query: no statement shape registered")
	ErrEmptySet          = errors.New("query: update has no set assignments")
	ErrNoValues          = errors.New("query: insert has no values")
	ErrUnqualifiedDelete = errors.New("query: delete has no predicates")
)

// Token minting failures, recorded by the builder and returned from Build.
var (
	ErrInvalidToken   = errors.New("query: generated placeholder is not lowercase alphabetic")
	ErrTokenCollision = errors.New("query: could not mint a unique placeholder")
)
