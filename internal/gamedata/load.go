package gamedata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/almanac/internal/log"
)

// FileError reports a data pack file that could not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("data pack file %s: %v", e.Path, e.Err) }
func (e *FileError) Unwrap() error { return e.Err }

// ErrNoPack is returned when a directory holds no data pack files.
var ErrNoPack = errors.New("no data pack files found")

// section routes a pack file to the part of the Pack it fills.
type section int

const (
	sectionNone section = iota
	sectionManifest
	sectionItems
	sectionFluids
	sectionEnchantments
	sectionPotions
	sectionStews
	sectionCrafting
	sectionSmelting
	sectionInfo
	sectionLang
)

func sectionOf(p string) section {
	if p == "pack.yaml" {
		return sectionManifest
	}
	dir := path.Dir(p)
	switch dir {
	case "items":
		return sectionItems
	case "fluids":
		return sectionFluids
	case "enchantments":
		return sectionEnchantments
	case "potions":
		return sectionPotions
	case "stews":
		return sectionStews
	case "recipes/crafting":
		return sectionCrafting
	case "recipes/smelting":
		return sectionSmelting
	case "info":
		return sectionInfo
	case "lang":
		return sectionLang
	}
	return sectionNone
}

func isYAML(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the data pack rooted at fsys. Files are parsed concurrently and
// merged in path order, so the result does not depend on scheduling.
func Load(ctx context.Context, fsys fs.FS) (*Pack, error) {
	start := time.Now()

	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		if sectionOf(p) == sectionNone {
			log.Debug(log.CatGameData, "Ignoring file outside known sections", "path", p)
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking data pack: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoPack
	}
	slices.Sort(files)

	parts := make([]*Pack, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := parseFile(fsys, p)
			if err != nil {
				return &FileError{Path: p, Err: err}
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pack := &Pack{Lang: make(map[string]map[string]string)}
	for _, part := range parts {
		pack.Merge(part)
	}
	log.Info(log.CatGameData, "Loaded data pack",
		"files", len(files),
		"items", len(pack.Items),
		"recipes", len(pack.Crafting)+len(pack.Smelting),
		"duration", time.Since(start))
	return pack, nil
}

// LoadDir loads the data pack in a directory.
func LoadDir(ctx context.Context, dir string) (*Pack, error) {
	pack, err := Load(ctx, os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	return pack, nil
}

// LoadAll loads the embedded default pack followed by every directory of dirs.
// Later packs override definitions of earlier ones.
func LoadAll(ctx context.Context, dirs []string) (*Pack, error) {
	pack, err := Load(ctx, Default())
	if err != nil {
		return nil, fmt.Errorf("loading default pack: %w", err)
	}
	for _, dir := range dirs {
		extra, err := LoadDir(ctx, dir)
		if err != nil {
			return nil, err
		}
		pack.Merge(extra)
	}
	return pack, nil
}

func parseFile(fsys fs.FS, p string) (*Pack, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	part := &Pack{}
	switch sectionOf(p) {
	case sectionManifest:
		var m Manifest
		err = yaml.Unmarshal(data, &m)
		part.Manifests = []Manifest{m}
	case sectionItems:
		err = yaml.Unmarshal(data, &part.Items)
	case sectionFluids:
		err = yaml.Unmarshal(data, &part.Fluids)
	case sectionEnchantments:
		err = yaml.Unmarshal(data, &part.Enchantments)
	case sectionPotions:
		err = yaml.Unmarshal(data, &part.Potions)
	case sectionStews:
		err = yaml.Unmarshal(data, &part.Stews)
	case sectionCrafting:
		err = yaml.Unmarshal(data, &part.Crafting)
	case sectionSmelting:
		err = yaml.Unmarshal(data, &part.Smelting)
	case sectionInfo:
		err = yaml.Unmarshal(data, &part.Info)
	case sectionLang:
		var table map[string]string
		err = yaml.Unmarshal(data, &table)
		locale := strings.TrimSuffix(path.Base(p), path.Ext(p))
		part.Lang = map[string]map[string]string{locale: table}
	}
	if err != nil {
		return nil, err
	}
	return part, nil
}
