package gamedata

import (
	"embed"
	"io/fs"
)

// defaultPack embeds the built-in vanilla data pack:
//   - default/pack.yaml
//   - default/<section>/*.yaml
//   - default/recipes/{crafting,smelting}/*.yaml
//
//go:embed default
var defaultPack embed.FS

// Default returns the embedded vanilla data pack.
func Default() fs.FS {
	sub, err := fs.Sub(defaultPack, "default")
	if err != nil {
		panic(err)
	}
	return sub
}
