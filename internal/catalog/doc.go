// Package catalog talks to the remote game catalog API that publishes the
// current launcher backgrounds for each supported game.
//
// Launcher presets (GIMI, HIMI, SRMI, ZZMI) map to catalog game ids through
// a closed table. BackgroundURL issues the catalog request and extracts the
// image or video URL; Download fetches the media itself. Non-2xx responses
// surface as services.ErrNetwork and deadline expiry as services.ErrTimeout.
package catalog
