package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BlockDef holds one block-type template, loaded from block_list.yaml.
type BlockDef struct {
	ID            uint16 `yaml:"id"`
	Name          string `yaml:"name"`
	Solid         bool   `yaml:"solid"`
	Air           bool   `yaml:"air"`
	LightEmission uint8  `yaml:"light_emission"` // 0..15, emitted light; placed blocks default to full when 0
}

// BlockTable provides block-type template lookups.
type BlockTable struct {
	defs map[uint16]*BlockDef
}

type blockListFile struct {
	Blocks []BlockDef `yaml:"blocks"`
}

// LoadBlockTable loads block templates from YAML. Duplicate ids are rejected:
// the world core relies on one template per type tag.
func LoadBlockTable(path string) (*BlockTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read block list %s: %w", path, err)
	}
	var file blockListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse block list: %w", err)
	}

	table := &BlockTable{
		defs: make(map[uint16]*BlockDef, len(file.Blocks)),
	}
	for i := range file.Blocks {
		def := &file.Blocks[i]
		if _, dup := table.defs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate block id %d (%s)", def.ID, def.Name)
		}
		table.defs[def.ID] = def
	}
	return table, nil
}

// Get returns the template for a block id, or nil when unknown.
func (t *BlockTable) Get(id uint16) *BlockDef {
	return t.defs[id]
}

// IsAir reports whether the id is the air sentinel or flagged as air.
// Unknown ids are not air: a missing template is a data problem, not empty
// space.
func (t *BlockTable) IsAir(id uint16) bool {
	if id == 0 {
		return true
	}
	if def := t.defs[id]; def != nil {
		return def.Air
	}
	return false
}

func (t *BlockTable) Count() int {
	return len(t.defs)
}
