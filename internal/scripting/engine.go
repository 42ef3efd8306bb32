package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/l1jgo/platformer/internal/geom"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

var ErrNoFunction = errors.New("lua function not found")

// Engine wraps a single gopher-lua VM for scripted behaviours and hooks.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory: core/ first, then behaviors/ and hooks/. Missing directories are
// skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	for _, sub := range []string{"core", "behaviors", "hooks"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	e.registerAPI()
	return e
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

// HasFunction reports whether a global Lua function is defined.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// registerAPI exposes engine helpers to scripts.
func (e *Engine) registerAPI() {
	e.vm.SetGlobal("log_info", e.vm.NewFunction(func(L *lua.LState) int {
		e.log.Info("lua", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	e.vm.SetGlobal("sign", e.vm.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(geom.Sign(float64(L.CheckNumber(1)))))
		return 1
	}))
	e.vm.SetGlobal("clamp", e.vm.NewFunction(func(L *lua.LState) int {
		v := geom.Clamp(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)), float64(L.CheckNumber(3)))
		L.Push(lua.LNumber(v))
		return 1
	}))
}

// BehaviorInput is the controller state handed to a behaviour function.
type BehaviorInput struct {
	Name   string
	X, Y   float64
	VX, VY float64
	Flying bool
	DT     float64
	Time   float64
}

// BehaviorOutput is what a behaviour function asked for. Fields the script
// did not set keep their Has flag false.
type BehaviorOutput struct {
	VX, VY       float64
	HasVX, HasVY bool
	Jump         bool
}

// CallBehavior calls the Lua function fn(state) and reads back the returned
// table. A nil return means no change.
func (e *Engine) CallBehavior(fn string, in BehaviorInput) (BehaviorOutput, error) {
	f, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return BehaviorOutput{}, fmt.Errorf("%w: %s", ErrNoFunction, fn)
	}

	t := e.vm.NewTable()
	t.RawSetString("name", lua.LString(in.Name))
	t.RawSetString("x", lua.LNumber(in.X))
	t.RawSetString("y", lua.LNumber(in.Y))
	t.RawSetString("vx", lua.LNumber(in.VX))
	t.RawSetString("vy", lua.LNumber(in.VY))
	t.RawSetString("flying", lua.LBool(in.Flying))
	t.RawSetString("dt", lua.LNumber(in.DT))
	t.RawSetString("time", lua.LNumber(in.Time))

	result, err := e.call(fn, f, t)
	if err != nil {
		return BehaviorOutput{}, err
	}
	if result == lua.LNil {
		return BehaviorOutput{}, nil
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		return BehaviorOutput{}, fmt.Errorf("lua %s returned %s, want table", fn, result.Type())
	}

	var out BehaviorOutput
	if v, ok := rt.RawGetString("vx").(lua.LNumber); ok {
		out.VX, out.HasVX = float64(v), true
	}
	if v, ok := rt.RawGetString("vy").(lua.LNumber); ok {
		out.VY, out.HasVY = float64(v), true
	}
	out.Jump = lua.LVAsBool(rt.RawGetString("jump"))
	return out, nil
}

// CallHook calls an optional global hook with a table of fields. A missing
// hook is not an error.
func (e *Engine) CallHook(name string, fields map[string]any) error {
	f, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil
	}
	t := e.vm.NewTable()
	for k, v := range fields {
		t.RawSetString(k, toLValue(v))
	}
	_, err := e.call(name, f, t)
	return err
}

// call runs f in protected mode with panic recovery, so a broken script
// cannot take down the frame loop.
func (e *Engine) call(name string, f *lua.LFunction, args ...lua.LValue) (result lua.LValue, err error) {
	top := e.vm.GetTop()
	defer func() {
		if rec := recover(); rec != nil {
			e.vm.SetTop(top)
			e.log.Error("lua call panic recovered", zap.String("func", name), zap.Any("panic", rec))
			err = fmt.Errorf("lua %s panic: %v", name, rec)
		}
	}()

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return lua.LNil, fmt.Errorf("lua %s: %w", name, err)
	}

	result = e.vm.Get(-1)
	e.vm.Pop(1)
	return result, nil
}

func toLValue(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	}
	return lua.LString(fmt.Sprint(v))
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
