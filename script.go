package grove

import (
	"errors"
	"fmt"

	"github.com/phanxgames/grove/assets"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Lua global function names a Script looks up. Each is optional.
const (
	luaInput     = "input"
	luaProcess   = "process"
	luaEnterTree = "enter_tree"
	luaReady     = "ready"
	luaExitTree  = "exit_tree"
)

// Script is a node whose hooks are implemented by a Lua chunk. The chunk
// runs once at construction in a VM owned by the node; it may define any of
// the global functions input(ev), process(dt), enter_tree(), ready() and
// exit_tree(). Input and process are enabled when the matching function is
// defined. input returning true consumes the event.
//
// The chunk sees a global table "node" with:
//
//	node.name()              -- the node's name
//	node.set_process(bool)   -- toggle the process channel
//	node.set_input(bool)     -- toggle the input channel
//	node.get(key)            -- read a value stored with Script.Set
//	node.set(key, value)     -- store a value readable with Script.Get
//	node.queue_free()        -- dispose the node at the end of the frame
type Script struct {
	*Node

	asset *assets.Script
	vm    *lua.LState
	state *lua.LTable
}

// NewScript loads the Lua chunk at path through e's asset manager and runs
// it in a fresh VM. The returned node is detached.
func NewScript(name string, e *Engine, path string) (*Script, error) {
	if e == nil {
		return nil, ErrNoEngine
	}
	asset, err := assets.Load[assets.Script](e.assets, assets.Path(path))
	if err != nil {
		return nil, fmt.Errorf("grove: script %s: %w", path, err)
	}

	s := &Script{asset: asset, vm: lua.NewState()}
	s.Node = newNode(name, e, scriptMRO)
	s.owner = s
	s.state = s.vm.NewTable()
	s.vm.SetGlobal("node", s.api())

	fn := s.vm.NewFunctionFromProto(asset.Proto())
	s.vm.Push(fn)
	if err := s.vm.PCall(0, lua.MultRet, nil); err != nil {
		s.vm.Close()
		e.assets.Unload(asset)
		return nil, fmt.Errorf("grove: script %s: %w", path, err)
	}

	s.OnInput = s.input
	s.OnProcess = s.process
	s.OnEnterTree = func() { s.call(luaEnterTree) }
	s.OnReady = func() { s.call(luaReady) }
	s.OnExitTree = func() { s.call(luaExitTree) }
	s.OnDispose = s.release
	s.SetInput(s.defines(luaInput))
	s.SetProcess(s.defines(luaProcess))
	return s, nil
}

// Get returns a value stored by the script with node.set, converted to a
// Go string, float64 or bool. Other Lua types return nil.
func (s *Script) Get(key string) any {
	if s.state == nil {
		return nil
	}
	switch v := s.state.RawGetString(key).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case lua.LBool:
		return bool(v)
	}
	return nil
}

// Set stores a string, number or bool readable by the script with node.get.
func (s *Script) Set(key string, value any) error {
	if s.state == nil {
		return errors.New("grove: script disposed")
	}
	var lv lua.LValue
	switch v := value.(type) {
	case string:
		lv = lua.LString(v)
	case float64:
		lv = lua.LNumber(v)
	case int:
		lv = lua.LNumber(v)
	case bool:
		lv = lua.LBool(v)
	case nil:
		lv = lua.LNil
	default:
		return fmt.Errorf("grove: unsupported script value %T", value)
	}
	s.state.RawSetString(key, lv)
	return nil
}

func (s *Script) api() *lua.LTable {
	return s.vm.SetFuncs(s.vm.NewTable(), map[string]lua.LGFunction{
		"name": func(L *lua.LState) int {
			L.Push(lua.LString(s.Name))
			return 1
		},
		"set_process": func(L *lua.LState) int {
			s.SetProcess(L.CheckBool(1))
			return 0
		},
		"set_input": func(L *lua.LState) int {
			s.SetInput(L.CheckBool(1))
			return 0
		},
		"get": func(L *lua.LState) int {
			L.Push(s.state.RawGetString(L.CheckString(1)))
			return 1
		},
		"set": func(L *lua.LState) int {
			s.state.RawSetString(L.CheckString(1), L.CheckAny(2))
			return 0
		},
		"queue_free": func(L *lua.LState) int {
			if s.engine != nil {
				s.engine.Defer(s.Dispose)
			}
			return 0
		},
	})
}

func (s *Script) defines(fn string) bool {
	return s.vm.GetGlobal(fn).Type() == lua.LTFunction
}

func (s *Script) input(ev InputEvent) bool {
	t := s.vm.NewTable()
	t.RawSetString("type", lua.LString(ev.Type.String()))
	t.RawSetString("key", lua.LString(ev.Key.String()))
	t.RawSetString("button", lua.LNumber(ev.Button))
	t.RawSetString("x", lua.LNumber(ev.X))
	t.RawSetString("y", lua.LNumber(ev.Y))
	t.RawSetString("wheel_x", lua.LNumber(ev.WheelX))
	t.RawSetString("wheel_y", lua.LNumber(ev.WheelY))
	ret, ok := s.callRet(luaInput, t)
	return ok && lua.LVAsBool(ret)
}

func (s *Script) process(dt float64) {
	s.call(luaProcess, lua.LNumber(dt))
}

func (s *Script) call(fn string, args ...lua.LValue) {
	if s.vm == nil {
		return
	}
	f := s.vm.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return
	}
	if err := s.vm.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true}, args...); err != nil {
		s.logError(fn, err)
	}
}

func (s *Script) callRet(fn string, args ...lua.LValue) (lua.LValue, bool) {
	if s.vm == nil {
		return lua.LNil, false
	}
	f := s.vm.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return lua.LNil, false
	}
	if err := s.vm.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, args...); err != nil {
		s.logError(fn, err)
		return lua.LNil, false
	}
	ret := s.vm.Get(-1)
	s.vm.Pop(1)
	return ret, true
}

func (s *Script) logError(fn string, err error) {
	s.engine.log.Warn("script hook failed",
		zap.String("node", s.Name), zap.String("hook", fn), zap.Error(err))
}

func (s *Script) release() {
	if s.vm != nil {
		s.vm.Close()
		s.vm = nil
	}
	if s.asset != nil {
		s.engine.assets.Unload(s.asset)
		s.asset = nil
	}
	s.state = nil
}
