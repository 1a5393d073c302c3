package assets

import (
	"fmt"
	"io"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// ScriptExtensions lists the discriminators ScriptLoader can compile.
var ScriptExtensions = []string{"lua"}

// Script is a compiled Lua chunk. The prototype is shared; every VM that
// runs it instantiates its own closure.
type Script struct {
	Base
	proto *lua.FunctionProto
}

// Proto returns the compiled chunk, or nil once freed.
func (s *Script) Proto() *lua.FunctionProto { return s.proto }

// Free drops the compiled chunk.
func (s *Script) Free() { s.proto = nil }

// ScriptLoader parses and compiles Lua source into *Script.
type ScriptLoader struct{}

func (ScriptLoader) Load(a Asset, r io.Reader) error {
	s, ok := a.(*Script)
	if !ok {
		return fmt.Errorf("%w: script loader cannot populate %T", ErrUnsupportedAsset, a)
	}
	name := a.Descriptor().Name()
	chunk, err := parse.Parse(r, name)
	if err != nil {
		return fmt.Errorf("parse lua: %w", err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return fmt.Errorf("compile lua: %w", err)
	}
	s.proto = proto
	return nil
}
