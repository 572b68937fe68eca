package config

import (
	"fmt"

	"cuelang.org/go/cue"
)

// parseErrorsSection extracts optional errors.* fields.
func parseErrorsSection(v cue.Value) Errors {
	var e Errors
	ev := v.LookupPath(cue.ParsePath("errors"))
	if !ev.Exists() {
		return e
	}
	e.HasMode = optionalString(ev, "mode", &e.Mode)
	e.HasEmbed = optionalBool(ev, "embedErrors", &e.EmbedErrors)
	return e
}

// parseLuaSection extracts optional inline scripts.
func parseLuaSection(v cue.Value) Lua {
	var l Lua
	lv := v.LookupPath(cue.ParsePath("lua"))
	if !lv.Exists() {
		return l
	}
	l.HasFilter = optionalString(lv, "filterInline", &l.FilterInline)
	l.HasMap = optionalString(lv, "mapInline", &l.MapInline)
	l.HasReduce = optionalString(lv, "reduceInline", &l.ReduceInline)
	return l
}

// parseLuaSandboxSection extracts optional lua sandbox limits.
func parseLuaSandboxSection(v cue.Value) (LuaSandbox, error) {
	var s LuaSandbox
	lv := v.LookupPath(cue.ParsePath("luaSandbox"))
	if !lv.Exists() {
		return s, nil
	}
	var err error
	if s.HasTimeoutMs, err = optionalInt(lv, "timeoutMs", &s.TimeoutMs); err != nil {
		return s, fmt.Errorf("luaSandbox: %w", err)
	}
	if s.HasInstructionLimit, err = optionalInt(lv, "instructionLimit", &s.InstructionLimit); err != nil {
		return s, fmt.Errorf("luaSandbox: %w", err)
	}
	if s.HasMemoryLimitBytes, err = optionalInt(lv, "memoryLimitBytes", &s.MemoryLimitBytes); err != nil {
		return s, fmt.Errorf("luaSandbox: %w", err)
	}
	return s, nil
}

// parseOutputSection extracts optional output.* fields.
func parseOutputSection(v cue.Value) Output {
	var o Output
	ov := v.LookupPath(cue.ParsePath("output"))
	if !ov.Exists() {
		return o
	}
	o.HasFormat = optionalString(ov, "format", &o.Format)
	o.HasPretty = optionalBool(ov, "pretty", &o.Pretty)
	o.HasOut = optionalString(ov, "out", &o.Out)
	return o
}
