package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for world-rule execution.
// Single-goroutine access only (game loop). Hot-reload planned via atomic swap.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "blocks", "world"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// SeedPlacement is one block placement returned by the Lua seed script.
type SeedPlacement struct {
	Type    uint16
	X, Y, Z int32
}

// SeedWorld calls Lua seed_world() and returns the initial block placements.
// Returns nil when no seed script is loaded.
func (e *Engine) SeedWorld() []SeedPlacement {
	fn := e.vm.GetGlobal("seed_world")
	if fn == lua.LNil {
		return nil
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		e.log.Error("lua seed_world error", zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	var out []SeedPlacement
	rt.ForEach(func(_, v lua.LValue) {
		if row, ok := v.(*lua.LTable); ok {
			out = append(out, SeedPlacement{
				Type: uint16(lInt(row, "type")),
				X:    int32(lInt(row, "x")),
				Y:    int32(lInt(row, "y")),
				Z:    int32(lInt(row, "z")),
			})
		}
	})
	return out
}

// BlockLight calls Lua block_light(block_type, default). The Go-side default
// is returned on any failure, so a missing script never darkens the world.
func (e *Engine) BlockLight(blockType uint16, def uint8) uint8 {
	fn := e.vm.GetGlobal("block_light")
	if fn == lua.LNil {
		return def
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(blockType), lua.LNumber(def)); err != nil {
		e.log.Error("lua block_light error", zap.Error(err), zap.Uint16("block_type", blockType))
		return def
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n := int(lua.LVAsNumber(result))
	if n < 0 || n > 15 {
		return def
	}
	return uint8(n)
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
