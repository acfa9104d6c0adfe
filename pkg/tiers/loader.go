package tiers

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Table holds the YAML-loaded tier tables for one provider.
type Table struct {
	Provider        string           `yaml:"provider"`
	Updated         string           `yaml:"updated"`
	VolumeTiers     []VolumeTier     `yaml:"volume_tiers"`
	CommitmentTiers []CommitmentTier `yaml:"commitment_tiers"`
	SupportTiers    []SupportTier    `yaml:"support_tiers"`
}

// Catalog is the merged view across all loaded providers. A zero
// Catalog falls back to the built-in default tables.
type Catalog struct {
	Volume     []VolumeTier
	Commitment []CommitmentTier
	Support    []SupportTier
}

// DefaultCatalog returns the built-in tables.
func DefaultCatalog() Catalog {
	return Catalog{
		Volume:     DefaultVolumeTiers,
		Commitment: DefaultCommitmentTiers,
		Support:    DefaultSupportTiers,
	}
}

// LoadTable reads a YAML tier file for a single provider.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tier file %s: %w", path, err)
	}
	return LoadTableFromBytes(data, path)
}

// LoadTableFromBytes parses YAML tier data from raw bytes. The name is
// used in error messages only.
func LoadTableFromBytes(data []byte, name string) (*Table, error) {
	var tbl Table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, fmt.Errorf("parse tier file %s: %w", name, err)
	}

	if tbl.Provider == "" {
		return nil, fmt.Errorf("tier file %s: missing provider name", name)
	}
	if len(tbl.VolumeTiers)+len(tbl.CommitmentTiers)+len(tbl.SupportTiers) == 0 {
		return nil, fmt.Errorf("tier file %s: no tiers defined", name)
	}

	// Band-level provider defaults to the file-level provider.
	for i := range tbl.VolumeTiers {
		if tbl.VolumeTiers[i].Provider == "" {
			tbl.VolumeTiers[i].Provider = tbl.Provider
		}
	}
	for i := range tbl.CommitmentTiers {
		if tbl.CommitmentTiers[i].Provider == "" {
			tbl.CommitmentTiers[i].Provider = tbl.Provider
		}
	}
	for i := range tbl.SupportTiers {
		if tbl.SupportTiers[i].Provider == "" {
			tbl.SupportTiers[i].Provider = tbl.Provider
		}
	}

	return &tbl, nil
}

// LoadCatalog merges every *.yaml tier file in dir. A missing or empty
// directory yields the built-in default catalog.
func LoadCatalog(dir string) (Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return Catalog{}, fmt.Errorf("read tier dir %s: %w", dir, err)
	}

	var cat Catalog
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		tbl, err := LoadTable(filepath.Join(dir, e.Name()))
		if err != nil {
			return Catalog{}, err
		}
		cat.Volume = append(cat.Volume, tbl.VolumeTiers...)
		cat.Commitment = append(cat.Commitment, tbl.CommitmentTiers...)
		cat.Support = append(cat.Support, tbl.SupportTiers...)
	}

	if len(cat.Volume)+len(cat.Commitment)+len(cat.Support) == 0 {
		return DefaultCatalog(), nil
	}
	return cat, nil
}
