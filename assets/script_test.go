package assets

import (
	"errors"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestScriptCompiles(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"add.lua": []byte("result = 20 + 22")})
	s, err := Load[Script](m, Path("add.lua"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Proto() == nil {
		t.Fatal("Proto should be set")
	}

	L := lua.NewState()
	defer L.Close()
	L.Push(L.NewFunctionFromProto(s.Proto()))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		t.Fatal(err)
	}
	if got := L.GetGlobal("result"); got != lua.LNumber(42) {
		t.Errorf("result = %v, want 42", got)
	}
}

func TestScriptSyntaxError(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"bad.lua": []byte("function (")})
	_, err := Load[Script](m, Path("bad.lua"))
	var lerr *LoaderError
	if !errors.As(err, &lerr) || lerr.Extension != "lua" {
		t.Errorf("err = %v, want *LoaderError for lua", err)
	}
}

func TestScriptFree(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"a.lua": []byte("x = 1")})
	s, err := Load[Script](m, Path("a.lua"))
	if err != nil {
		t.Fatal(err)
	}
	m.Unload(s)
	if s.Proto() != nil {
		t.Error("Proto should be dropped after the last unload")
	}
}
