// Package scripting wraps a gopher-lua VM for script-driven behaviours.
// Single-goroutine access only: scripts run inside the simulation tick.
package scripting

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/observability/log"
)

// ErrFunctionNotFound means a script does not define a required global
// function. Surfaced at load time, not per tick.
var ErrFunctionNotFound = errors.New("lua function not found")

const updateFunction = "update"

type Engine struct {
	vm  *lua.LState
	log log.Log
}

func NewEngine(logger log.Log) *Engine {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: logger}
}

func (e *Engine) Close() {
	e.vm.Close()
}

// LoadSource executes src and verifies it defined the update entry point.
func (e *Engine) LoadSource(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	if e.vm.GetGlobal(updateFunction) == lua.LNil {
		return fmt.Errorf("%w: %s", ErrFunctionNotFound, updateFunction)
	}
	return nil
}

// Update calls the script's update(dt, pos) with pos as a {x, y, z} table
// and returns the position from the returned table. A script returning
// nothing leaves the position unchanged.
func (e *Engine) Update(dt float64, pos geom.Vector3) (geom.Vector3, error) {
	fn := e.vm.GetGlobal(updateFunction)
	if fn == lua.LNil {
		return pos, fmt.Errorf("%w: %s", ErrFunctionNotFound, updateFunction)
	}

	t := e.vm.NewTable()
	t.RawSetString("x", lua.LNumber(pos.X))
	t.RawSetString("y", lua.LNumber(pos.Y))
	t.RawSetString("z", lua.LNumber(pos.Z))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(dt), t); err != nil {
		return pos, fmt.Errorf("lua %s: %w", updateFunction, err)
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	out, ok := ret.(*lua.LTable)
	if !ok {
		return pos, nil
	}
	pos.X = numberField(out, "x", pos.X)
	pos.Y = numberField(out, "y", pos.Y)
	pos.Z = numberField(out, "z", pos.Z)
	return pos, nil
}

func numberField(t *lua.LTable, key string, fallback float64) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return fallback
}
