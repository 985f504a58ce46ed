// Package resolver finds bundled resources and the games library by probing
// an ordered list of candidate locations. The existence check and the base
// directories are injectable so lookups can be tested against a fake
// filesystem.
package resolver
