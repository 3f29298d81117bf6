package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaultData embed.FS

const (
	cardsFile   = "cards.yaml"
	packsFile   = "packs.yaml"
	regionsFile = "regions.yaml"
)

type cardsDoc struct {
	Cards []Card `yaml:"cards"`
}

type packsDoc struct {
	Packs []Pack `yaml:"packs"`
}

type regionsDoc struct {
	Regions []Region `yaml:"regions"`
}

// Load builds the catalog from the embedded default data. Any parse or
// validation failure is fatal to startup; there is no degraded mode.
func Load() (*Catalog, error) {
	return load(func(name string) ([]byte, error) {
		return defaultData.ReadFile("data/" + name)
	})
}

// LoadDir builds the catalog from YAML files in dir. Files absent from
// dir fall back to the embedded defaults, so a data directory can
// override just one catalog.
func LoadDir(dir string) (*Catalog, error) {
	return load(func(name string) ([]byte, error) {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if os.IsNotExist(err) {
			return defaultData.ReadFile("data/" + name)
		}
		return nil, err
	})
}

// New assembles a catalog from in-memory definitions, applying the
// same indexing and validation as the file loaders.
func New(cards []Card, packs []Pack, regions []Region) (*Catalog, error) {
	cat := &Catalog{Cards: cards, Packs: make(map[string]Pack, len(packs)), Regions: regions}
	for _, p := range packs {
		if _, dup := cat.Packs[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate pack id %q", p.ID)
		}
		cat.Packs[p.ID] = p
	}
	cat.index()
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func load(read func(name string) ([]byte, error)) (*Catalog, error) {
	cat := &Catalog{Packs: make(map[string]Pack)}

	var cards cardsDoc
	if err := readInto(read, cardsFile, &cards); err != nil {
		return nil, err
	}
	cat.Cards = cards.Cards

	var packs packsDoc
	if err := readInto(read, packsFile, &packs); err != nil {
		return nil, err
	}
	for _, p := range packs.Packs {
		if _, dup := cat.Packs[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate pack id %q", p.ID)
		}
		cat.Packs[p.ID] = p
	}

	var regions regionsDoc
	if err := readInto(read, regionsFile, &regions); err != nil {
		return nil, err
	}
	cat.Regions = regions.Regions

	cat.index()

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func readInto(read func(name string) ([]byte, error), name string, out any) error {
	b, err := read(name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	return nil
}
