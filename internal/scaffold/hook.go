package scaffold

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const hookTimeout = 2 * time.Second

// ApplyVarsHook runs the project's scaffold vars hook over the template
// variables and returns the amended set. The hook receives the variables as
// a table named "vars" and must return a table; an empty inline script is
// the identity. Hook failures abort generation.
func ApplyVarsHook(inline string, vars map[string]any) (map[string]any, error) {
	if inline == "" {
		return vars, nil
	}
	L := newHookState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()
	L.SetContext(ctx)

	args := map[string]any{}
	for k, v := range vars {
		args[k] = v
	}
	L.SetGlobal("vars", toLValue(L, args))

	code := inline
	if !strings.Contains(code, "return") {
		code = "return (" + code + ")"
	}
	fn, err := L.LoadString(code)
	if err != nil {
		return nil, fmt.Errorf("vars hook: %v", err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("vars hook: timeout after %s", hookTimeout)
		}
		return nil, fmt.Errorf("vars hook: %v", err)
	}
	ret := fromLValue(L.Get(-1))
	L.Pop(1)

	out, ok := ret.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("vars hook: must return a table of variables")
	}
	return out, nil
}

// newHookState builds a restricted Lua state: base, string, table and math
// only. Hooks never get io, os or package access.
func newHookState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:    true,
		RegistrySize:    256,
		RegistryMaxSize: 4096,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib("base", lua.OpenBase)
	openLib("string", lua.OpenString)
	openLib("table", lua.OpenTable)
	openLib("math", lua.OpenMath)
	return L
}

// toLValue converts a Go value to a Lua value.
func toLValue(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(x)
	case bool:
		if x {
			return lua.LTrue
		}
		return lua.LFalse
	case int:
		return lua.LNumber(float64(x))
	case int64:
		return lua.LNumber(float64(x))
	case float64:
		return lua.LNumber(x)
	case map[string]any:
		tbl := L.NewTable()
		for k, v2 := range x {
			tbl.RawSetString(k, toLValue(L, v2))
		}
		return tbl
	case []any:
		tbl := L.NewTable()
		for i, v2 := range x {
			tbl.RawSetInt(i+1, toLValue(L, v2))
		}
		return tbl
	default:
		return lua.LNil
	}
}

// fromLValue converts a Lua value back to a Go value. Tables with
// sequential numeric keys become slices, everything else becomes a map.
func fromLValue(v lua.LValue) any {
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTBool:
		return lua.LVAsBool(v)
	case lua.LTNumber:
		return float64(v.(lua.LNumber))
	case lua.LTString:
		return v.String()
	case lua.LTTable:
		t := v.(*lua.LTable)
		arr := []any{}
		isArray := true
		t.ForEach(func(k, val lua.LValue) {
			if isArray {
				if lk, ok := k.(lua.LNumber); ok && int(lk) == len(arr)+1 {
					arr = append(arr, fromLValue(val))
				} else {
					isArray = false
				}
			}
		})
		if isArray && len(arr) > 0 {
			return arr
		}
		obj := map[string]any{}
		t.ForEach(func(k, val lua.LValue) {
			obj[k.String()] = fromLValue(val)
		})
		return obj
	default:
		return nil
	}
}
