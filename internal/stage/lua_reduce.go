package stage

import (
	"context"
	"fmt"
)

const luaReduceStage = "lua-reduce"

// reduceItem is the value a reducer sees as `item`: the mapped value when
// present, else the record fields.
func reduceItem(rec Record) any {
	if rec.Mapped != nil {
		return rec.Mapped
	}
	return rec.globals()
}

// luaReduceRunner folds the successful records into meta.reduced. Any
// reducer failure aborts the stage since there is no record to attach it to.
func luaReduceRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if in.Meta == nil || in.Meta.Lua == nil || in.Meta.Lua.ReduceInline == "" {
		return in, nil
	}
	code := wrapExpression(in.Meta.Lua.ReduceInline, "return acc")

	sb := newSandbox(luaReduceStage, in.Meta)
	var acc any
	for _, rec := range in.Records {
		if rec.Error != nil {
			continue
		}
		globals := map[string]any{"acc": acc, "item": reduceItem(rec)}
		ret, violation, err := sb.eval(rec.key(), globals, code)
		if violation != "" {
			return Envelope{}, sb.violationError(violation)
		}
		if err != nil {
			return Envelope{}, fmt.Errorf("%s: %s: %v", luaReduceStage, rec.key(), err)
		}
		acc = ret
	}

	out := in
	meta := *in.Meta
	meta.Reduced = acc
	out.Meta = &meta
	deps.logger().Debug("reduced records", "records", len(in.Records))
	return out, nil
}

func init() { Register(luaReduceStage, luaReduceRunner) }
