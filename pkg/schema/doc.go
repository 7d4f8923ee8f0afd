// Package schema declares the options a console application accepts and
// resolves their values across sources.
//
// A Schema is split into four segments: internal options handled by the
// console itself, global and visible application options, and run options
// that must be set and may be given by position. Each source's tokens are
// parsed with a fresh pflag flag set holding the whole schema, and the
// explicitly set options are merged into Values according to a Policy.
package schema
