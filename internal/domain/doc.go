// Package domain contains the core model for libris: books, their
// validation rules and the line format they are stored in.
//
// The domain does not touch the filesystem. Infra adapters map into/from
// these types.
package domain
