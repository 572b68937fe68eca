package run

import (
	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/config"
	"github.com/flarebyte/surface-fixtures/internal/stage"
)

// prepareEnvelope builds the pipeline input. Sections of the config file
// come first, explicit flags override them.
func prepareEnvelope(cmd *cobra.Command, maxSteps int) (stage.Envelope, error) {
	meta := &stage.Meta{MaxSteps: maxSteps}
	if cfgPath != "" {
		f, err := config.Parse(cfgPath)
		if err != nil {
			return stage.Envelope{}, err
		}
		meta.ConfigPath = cfgPath
		applyFileSections(meta, f, cmd.Flags().Changed("max-steps"))
	} else {
		meta.Discovery = &stage.DiscoveryMeta{Root: rootDir, NoGitignore: noGitignore}
	}
	applyFlagOverrides(cmd, meta)
	return stage.Envelope{Records: []stage.Record{}, Meta: meta}, nil
}

func applyFileSections(meta *stage.Meta, f config.File, maxStepsFlag bool) {
	if f.HasMaxSteps && !maxStepsFlag {
		meta.MaxSteps = f.MaxSteps
	}
	if f.Errors.HasMode || f.Errors.HasEmbed {
		meta.Errors = &stage.ErrorsMeta{Mode: f.Errors.Mode, EmbedErrors: f.Errors.EmbedErrors}
	}
	if f.Lua.HasFilter || f.Lua.HasMap || f.Lua.HasReduce {
		meta.Lua = &stage.LuaMeta{FilterInline: f.Lua.FilterInline, MapInline: f.Lua.MapInline, ReduceInline: f.Lua.ReduceInline}
	}
	if s := f.LuaSandbox; s.HasTimeoutMs || s.HasInstructionLimit || s.HasMemoryLimitBytes {
		sb := stage.DefaultLuaSandbox()
		if s.HasTimeoutMs {
			sb.TimeoutMs = s.TimeoutMs
		}
		if s.HasInstructionLimit {
			sb.InstructionLimit = s.InstructionLimit
		}
		if s.HasMemoryLimitBytes {
			sb.MemoryLimitBytes = s.MemoryLimitBytes
		}
		meta.LuaSandbox = sb
	}
	if o := f.Output; o.HasFormat || o.HasPretty || o.HasOut {
		meta.Output = &stage.OutputMeta{Format: o.Format, Pretty: o.Pretty, Out: o.Out}
	}
}

func applyFlagOverrides(cmd *cobra.Command, meta *stage.Meta) {
	fl := cmd.Flags()
	if fl.Changed("keep-going") || fl.Changed("embed-errors") {
		if meta.Errors == nil {
			meta.Errors = &stage.ErrorsMeta{}
		}
		if fl.Changed("keep-going") {
			meta.Errors.Mode = "fail-fast"
			if keepGoing {
				meta.Errors.Mode = "keep-going"
			}
		}
		if fl.Changed("embed-errors") {
			meta.Errors.EmbedErrors = embedErrors
		}
	}
	if fl.Changed("filter") || fl.Changed("map") || fl.Changed("reduce") {
		if meta.Lua == nil {
			meta.Lua = &stage.LuaMeta{}
		}
		if fl.Changed("filter") {
			meta.Lua.FilterInline = filterLua
		}
		if fl.Changed("map") {
			meta.Lua.MapInline = mapLua
		}
		if fl.Changed("reduce") {
			meta.Lua.ReduceInline = reduceLua
		}
	}
	if fl.Changed("format") || fl.Changed("pretty") || fl.Changed("out") {
		if meta.Output == nil {
			meta.Output = &stage.OutputMeta{}
		}
		if fl.Changed("format") {
			meta.Output.Format = format
		}
		if fl.Changed("pretty") {
			meta.Output.Pretty = pretty
		}
		if fl.Changed("out") {
			meta.Output.Out = outPath
		}
	}
}
