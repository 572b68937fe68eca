package stage

import (
	"context"
	"fmt"
)

const luaMapStage = "lua-map"

func buildLuaMapCode(in Envelope) string {
	code := ""
	if in.Meta != nil && in.Meta.Lua != nil {
		code = in.Meta.Lua.MapInline
	}
	return wrapExpression(code, "return value")
}

// processLuaMapRecord runs the map chunk for one record and stores the result
// in Mapped. A nil result leaves the record unmapped.
func processLuaMapRecord(rec Record, code string, mode string, embed bool, meta *Meta) (keep bool, out Record, envE *Error, fatal error) {
	if rec.Error != nil {
		return true, rec, nil, nil
	}
	sb := newSandbox(luaMapStage, meta)
	ret, violation, err := sb.eval(rec.key(), rec.globals(), code)
	msg := violation
	if err != nil {
		msg = err.Error()
	}
	if msg != "" {
		if mode == modeKeepGoing {
			out, envE = recordFailure(rec, luaMapStage, msg, embed)
			return embed, out, envE, nil
		}
		if violation != "" {
			return false, Record{}, nil, sb.violationError(violation)
		}
		return false, Record{}, nil, fmt.Errorf("%s: %v", luaMapStage, err)
	}
	rec.Mapped = ret
	return true, rec, nil, nil
}

func luaMapRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	if in.Meta == nil || in.Meta.Lua == nil || in.Meta.Lua.MapInline == "" {
		return in, nil
	}
	code := buildLuaMapCode(in)
	mode, embed := errorMode(in.Meta)

	out := in
	out.Records = make([]Record, 0, len(in.Records))
	var envErrs []Error
	var firstErr error
	for _, r := range in.Records {
		keep, rec, envE, fatal := processLuaMapRecord(r, code, mode, embed, in.Meta)
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

func init() { Register(luaMapStage, luaMapRunner) }
