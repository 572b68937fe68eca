package stage

import (
	"context"
	"fmt"
)

const luaFilterStage = "lua-filter"

// buildLuaPredicate returns the predicate chunk from envelope meta, wrapping
// expressions without an explicit return.
func buildLuaPredicate(in Envelope) string {
	code := ""
	if in.Meta != nil && in.Meta.Lua != nil {
		code = in.Meta.Lua.FilterInline
	}
	return wrapExpression(code, "return true")
}

// processLuaFilterRecord applies the predicate to a single record. Records
// already carrying an error pass through untouched.
func processLuaFilterRecord(rec Record, pred string, mode string, embed bool, meta *Meta) (keep bool, out Record, envE *Error, fatal error) {
	if rec.Error != nil {
		return true, rec, nil, nil
	}
	sb := newSandbox(luaFilterStage, meta)
	ret, violation, err := sb.eval(rec.key(), rec.globals(), pred)
	msg := violation
	if err != nil {
		msg = err.Error()
	}
	if msg != "" {
		if mode == modeKeepGoing {
			out, envE = recordFailure(rec, luaFilterStage, msg, embed)
			return embed, out, envE, nil
		}
		if violation != "" {
			return false, Record{}, nil, sb.violationError(violation)
		}
		return false, Record{}, nil, fmt.Errorf("%s: %v", luaFilterStage, err)
	}
	keep, _ = ret.(bool)
	return keep, rec, nil, nil
}

func luaFilterRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	if in.Meta == nil || in.Meta.Lua == nil || in.Meta.Lua.FilterInline == "" {
		return in, nil
	}
	pred := buildLuaPredicate(in)
	mode, embed := errorMode(in.Meta)

	out := in
	out.Records = make([]Record, 0, len(in.Records))
	var envErrs []Error
	var firstErr error
	for _, r := range in.Records {
		keep, rec, envE, fatal := processLuaFilterRecord(r, pred, mode, embed, in.Meta)
		accumulateStageError(&envErrs, &firstErr, envE, fatal)
		if firstErr != nil {
			return Envelope{}, firstErr
		}
		if keep {
			out.Records = append(out.Records, rec)
		}
	}
	appendSanitizedErrors(&out, envErrs)
	return out, nil
}

func init() { Register(luaFilterStage, luaFilterRunner) }
