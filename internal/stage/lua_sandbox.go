package stage

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const (
	defaultLuaTimeoutMs        = 2000
	defaultLuaInstructionLimit = 1000000
	defaultLuaMemoryLimitBytes = 8388608
)

const (
	sandboxTimeoutViolation     = "sandbox timeout"
	sandboxInstructionViolation = "sandbox instruction limit"
	sandboxMemoryViolation      = "sandbox memory limit"
)

// luaSandboxFromMeta resolves the sandbox limits. Negative limits in meta
// keep the defaults; libs and random mode are taken as given.
func luaSandboxFromMeta(meta *Meta) LuaSandboxMeta {
	cfg := LuaSandboxMeta{
		TimeoutMs:           defaultLuaTimeoutMs,
		InstructionLimit:    defaultLuaInstructionLimit,
		MemoryLimitBytes:    defaultLuaMemoryLimitBytes,
		Libs:                LuaSandboxLibsMeta{Base: true, Table: true, String: true, Math: true},
		DeterministicRandom: true,
	}
	if meta == nil || meta.LuaSandbox == nil {
		return cfg
	}
	in := meta.LuaSandbox
	type limit struct {
		dst *int
		v   int
	}
	for _, lim := range []limit{
		{&cfg.TimeoutMs, in.TimeoutMs},
		{&cfg.InstructionLimit, in.InstructionLimit},
		{&cfg.MemoryLimitBytes, in.MemoryLimitBytes},
	} {
		if lim.v >= 0 {
			*lim.dst = lim.v
		}
	}
	cfg.Libs = in.Libs
	cfg.DeterministicRandom = in.DeterministicRandom
	return cfg
}

// DefaultLuaSandbox returns the sandbox limits used when none are configured.
func DefaultLuaSandbox() *LuaSandboxMeta {
	cfg := luaSandboxFromMeta(nil)
	return &cfg
}

// sandbox evaluates Lua chunks for one stage. Every evaluation gets a fresh
// state, so scripts cannot leak globals between records.
type sandbox struct {
	stage string
	cfg   LuaSandboxMeta
}

func newSandbox(stage string, meta *Meta) sandbox {
	return sandbox{stage: stage, cfg: luaSandboxFromMeta(meta)}
}

// eval runs code with globals set for the record identified by key. A
// tripped limit is reported as a violation name rather than an error.
func (s sandbox) eval(key string, globals map[string]any, code string) (any, string, error) {
	if exceedsInstructionBudget(code, s.cfg.InstructionLimit) {
		return nil, sandboxInstructionViolation, nil
	}

	L := s.newState(key)
	defer L.Close()

	if s.cfg.TimeoutMs > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
		L.SetContext(ctx)
	}
	for k, v := range globals {
		L.SetGlobal(k, toLValue(L, v))
	}

	fn, err := L.LoadString(code)
	if err != nil {
		return nil, "", err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		switch {
		case isTimeoutError(err):
			return nil, sandboxTimeoutViolation, nil
		case strings.Contains(strings.ToLower(err.Error()), "registry overflow"):
			return nil, sandboxMemoryViolation, nil
		}
		return nil, "", err
	}
	out := fromLValue(L.Get(-1))
	L.Pop(1)
	if s.cfg.MemoryLimitBytes > 0 && valueSize(out, 0) > s.cfg.MemoryLimitBytes {
		return nil, sandboxMemoryViolation, nil
	}
	return out, "", nil
}

// violationError is the fail-fast form of a tripped limit.
func (s sandbox) violationError(violation string) error {
	return fmt.Errorf("%s: %s", s.stage, violation)
}

func (s sandbox) newState(key string) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  registryCeiling(s.cfg.MemoryLimitBytes),
		RegistryGrowStep: 0,
	})
	libs := []struct {
		enabled bool
		name    string
		open    lua.LGFunction
	}{
		{s.cfg.Libs.Base, "base", lua.OpenBase},
		{s.cfg.Libs.String, "string", lua.OpenString},
		{s.cfg.Libs.Table, "table", lua.OpenTable},
		{s.cfg.Libs.Math, "math", lua.OpenMath},
	}
	for _, lib := range libs {
		if !lib.enabled {
			continue
		}
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	if s.cfg.Libs.Math && s.cfg.DeterministicRandom {
		replaceRandom(L, rand.New(rand.NewSource(deterministicSeed(s.stage, key))))
	}
	return L
}

// registryCeiling lowers the Lua registry size along with the memory limit.
func registryCeiling(memoryLimitBytes int) int {
	if memoryLimitBytes <= 0 {
		return 256
	}
	return min(max(memoryLimitBytes/64, 128), 4096)
}

// deterministicSeed derives the math.random seed from the stage and the
// record key so reruns produce identical output.
func deterministicSeed(stage, key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stage))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// replaceRandom swaps math.random for one driven by rng and turns
// math.randomseed into a no-op.
func replaceRandom(L *lua.LState, rng *rand.Rand) {
	mathTbl, ok := L.GetGlobal("math").(*lua.LTable)
	if !ok {
		return
	}
	mathTbl.RawSetString("random", L.NewFunction(func(L *lua.LState) int {
		lo, hi := 1, 0
		switch L.GetTop() {
		case 0:
			L.Push(lua.LNumber(rng.Float64()))
			return 1
		case 1:
			hi = L.CheckInt(1)
		default:
			lo, hi = L.CheckInt(1), L.CheckInt(2)
		}
		if hi < lo {
			L.ArgError(L.GetTop(), "interval is empty")
			return 0
		}
		L.Push(lua.LNumber(rng.Intn(hi-lo+1) + lo))
		return 1
	}))
	mathTbl.RawSetString("randomseed", L.NewFunction(func(*lua.LState) int { return 0 }))
}

// exceedsInstructionBudget is a static estimate: gopher-lua has no
// instruction counter, so code length and loop keywords stand in for it.
func exceedsInstructionBudget(code string, limit int) bool {
	if limit <= 0 {
		return false
	}
	cost := len(code) * 10
	lower := strings.ToLower(code)
	for _, loop := range []string{"while ", "repeat", "for "} {
		if strings.Contains(lower, loop) {
			cost += 1000000
			break
		}
	}
	return cost > limit
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}

// valueSize approximates the bytes held by a converted Lua result.
func valueSize(v any, depth int) int {
	if depth > 32 {
		return 0
	}
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case string:
		return len(x)
	case int, int64, float64:
		return 8
	case map[string]any:
		n := 0
		for k, item := range x {
			n += len(k) + valueSize(item, depth+1)
		}
		return n
	case []any:
		n := 0
		for _, item := range x {
			n += valueSize(item, depth+1)
		}
		return n
	default:
		return 16
	}
}

// wrapExpression turns a bare expression into a chunk returning it.
func wrapExpression(code, fallback string) string {
	if strings.TrimSpace(code) == "" {
		return fallback
	}
	if strings.Contains(code, "return") {
		return code
	}
	return "return (" + code + ")"
}
