// Package content embeds the shipped Spellbound game data so the
// binary runs standalone, with no content directory required.
package content

import "embed"

//go:embed *.lua
var Files embed.FS
