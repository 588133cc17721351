package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Govind-619/SlotPay/models"
	"github.com/spf13/viper"
)

// ErrUnknownPack is returned when a pack id is not in the catalog
var ErrUnknownPack = errors.New("unknown slot pack")

// DefaultPacks is the catalog used when no packs file is configured
var DefaultPacks = []models.Pack{
	{ID: "pack_5", Amount: 49900, Slots: 5},
	{ID: "pack_12", Amount: 99900, Slots: 12},
	{ID: "pack_30", Amount: 199900, Slots: 30},
}

// Catalog is an immutable lookup table of slot packs
type Catalog struct {
	packs map[string]models.Pack
}

// NewCatalog builds a catalog, rejecting empty ids, duplicates and
// non-positive amounts or slot counts.
func NewCatalog(packs []models.Pack) (*Catalog, error) {
	if len(packs) == 0 {
		return nil, errors.New("catalog: no packs configured")
	}
	c := &Catalog{packs: make(map[string]models.Pack, len(packs))}
	for _, p := range packs {
		if p.ID == "" {
			return nil, errors.New("catalog: pack with empty id")
		}
		if p.Amount <= 0 {
			return nil, fmt.Errorf("catalog: pack %s: amount must be positive", p.ID)
		}
		if p.Slots <= 0 {
			return nil, fmt.Errorf("catalog: pack %s: slots must be positive", p.ID)
		}
		if _, dup := c.packs[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate pack %s", p.ID)
		}
		c.packs[p.ID] = p
	}
	return c, nil
}

// LoadCatalog reads packs from a YAML or JSON file shaped as
// `packs: [{id, amount, slots}]`. An empty path yields DefaultPacks.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultPacks)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var file struct {
		Packs []models.Pack `mapstructure:"packs"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return NewCatalog(file.Packs)
}

// Resolve returns the pack for an id
func (c *Catalog) Resolve(packID string) (models.Pack, error) {
	p, ok := c.packs[packID]
	if !ok {
		return models.Pack{}, fmt.Errorf("%w: %q", ErrUnknownPack, packID)
	}
	return p, nil
}

// Packs lists every pack ordered by id
func (c *Catalog) Packs() []models.Pack {
	out := make([]models.Pack, 0, len(c.packs))
	for _, p := range c.packs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
