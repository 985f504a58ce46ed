// Package textutil holds small string helpers shared by the library, asset,
// and CLI layers: game-name validation and token sanitizing.
package textutil
