// Package fileutil provides file copy helpers: single-file copies with
// optional integrity checks, skip-existing tree copies, and temp-file then
// rename writes.
package fileutil
