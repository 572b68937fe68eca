package stage

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func countdownRecords(values ...int64) []Record {
	recs := make([]Record, 0, len(values))
	for i, v := range values {
		step := "a"
		if i%2 == 1 {
			step = "b"
		}
		recs = append(recs, Record{Locator: "c.cue", Scenario: "s", Action: "recurse", Index: i, Step: step, Value: v})
	}
	return recs
}

func TestLuaFilter_KeepsMatching(t *testing.T) {
	in := Envelope{
		Records: countdownRecords(2, 1, 0, -1),
		Meta:    &Meta{Lua: &LuaMeta{FilterInline: "value > 0 and step == 'a' or value < 0"}},
	}
	out, _ := runStage(t, luaFilterStage, in)
	var got []int64
	for _, r := range out.Records {
		got = append(got, r.Value)
	}
	if diff := cmp.Diff([]int64{2, -1}, got); diff != "" {
		t.Fatalf("filtered values mismatch (-want +got):\n%s", diff)
	}
}

func TestLuaFilter_NoScriptPassesThrough(t *testing.T) {
	in := Envelope{Records: countdownRecords(1, 0), Meta: &Meta{}}
	out, _ := runStage(t, luaFilterStage, in)
	if len(out.Records) != 2 {
		t.Fatalf("expected passthrough, got %d records", len(out.Records))
	}
}

func TestLuaMap_SetsMapped(t *testing.T) {
	in := Envelope{
		Records: countdownRecords(3, 2),
		Meta:    &Meta{Lua: &LuaMeta{MapInline: "{ step = step, double = value * 2 }"}},
	}
	out, _ := runStage(t, luaMapStage, in)
	want := []any{
		map[string]any{"step": "a", "double": int64(6)},
		map[string]any{"step": "b", "double": int64(4)},
	}
	var got []any
	for _, r := range out.Records {
		got = append(got, r.Mapped)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestLuaMap_ArrayResult(t *testing.T) {
	in := Envelope{
		Records: countdownRecords(1),
		Meta:    &Meta{Lua: &LuaMeta{MapInline: "return { value, value - 1 }"}},
	}
	out, _ := runStage(t, luaMapStage, in)
	if diff := cmp.Diff([]any{int64(1), int64(0)}, out.Records[0].Mapped); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestLuaMap_FailFast(t *testing.T) {
	in := Envelope{
		Records: countdownRecords(1),
		Meta:    &Meta{Lua: &LuaMeta{MapInline: "error('boom')"}},
	}
	_, err := Run(context.Background(), luaMapStage, in, Deps{})
	if err == nil || !strings.HasPrefix(err.Error(), "lua-map:") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected lua-map error, got %v", err)
	}
}

func TestLuaMap_KeepGoingWithoutEmbedDropsRecord(t *testing.T) {
	in := Envelope{
		Records: countdownRecords(1, 0),
		Meta: &Meta{
			Lua:    &LuaMeta{MapInline: "if value == 0 then error('zero') end return value"},
			Errors: &ErrorsMeta{Mode: modeKeepGoing},
		},
	}
	out, _ := runStage(t, luaMapStage, in)
	if len(out.Records) != 1 || out.Records[0].Value != 1 {
		t.Fatalf("expected only the successful record, got %+v", out.Records)
	}
	if len(out.Errors) != 1 || out.Errors[0].Stage != luaMapStage || out.Errors[0].Locator != "c.cue#s" {
		t.Fatalf("unexpected errors: %+v", out.Errors)
	}
}

func TestLuaReduce_SumsValues(t *testing.T) {
	in := Envelope{
		Records: countdownRecords(3, 2, 1, 0),
		Meta:    &Meta{Lua: &LuaMeta{ReduceInline: "(acc or 0) + item.value"}},
	}
	out, _ := runStage(t, luaReduceStage, in)
	if out.Meta.Reduced != int64(6) {
		t.Fatalf("unexpected reduced value: %#v", out.Meta.Reduced)
	}
	if in.Meta.Reduced != nil {
		t.Fatalf("input meta must not be modified")
	}

	_, lines := runStage(t, writeOutputStage, out)
	if lines != "6\n" {
		t.Fatalf("unexpected lines output: %q", lines)
	}
}

func TestLuaReduce_UsesMappedAndSkipsErrors(t *testing.T) {
	recs := countdownRecords(1, 0)
	recs[0].Mapped = "x"
	recs[1].Error = &RecError{Stage: luaMapStage, Message: "boom"}
	in := Envelope{Records: recs, Meta: &Meta{Lua: &LuaMeta{ReduceInline: "(acc or '') .. item"}}}
	out, _ := runStage(t, luaReduceStage, in)
	if out.Meta.Reduced != "x" {
		t.Fatalf("unexpected reduced value: %#v", out.Meta.Reduced)
	}
}

func TestLuaReduce_ErrorIsFatal(t *testing.T) {
	in := Envelope{
		Records: countdownRecords(1),
		Meta:    &Meta{Lua: &LuaMeta{ReduceInline: "acc.missing.field"}, Errors: &ErrorsMeta{Mode: modeKeepGoing}},
	}
	_, err := Run(context.Background(), luaReduceStage, in, Deps{})
	if err == nil || !strings.HasPrefix(err.Error(), "lua-reduce: c.cue#s:") {
		t.Fatalf("unexpected error: %v", err)
	}
}
