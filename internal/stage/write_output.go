package stage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/flarebyte/surface-fixtures/internal/tracefile"
)

const writeOutputStage = "write-output"

// Output formats.
const (
	FormatLines = "lines"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ContractVersion is stamped on serialized envelopes.
const ContractVersion = "1"

func getOutputSettings(meta *Meta) (outPath string, format string, pretty bool) {
	outPath, format = "-", FormatLines
	if meta != nil && meta.Output != nil {
		if meta.Output.Out != "" {
			outPath = meta.Output.Out
		}
		if meta.Output.Format != "" {
			format = meta.Output.Format
		}
		pretty = meta.Output.Pretty
	}
	return
}

func stripErrorsIfNeeded(env *Envelope) {
	if env.Meta != nil && env.Meta.Errors != nil && !env.Meta.Errors.EmbedErrors {
		for i := range env.Records {
			env.Records[i].Error = nil
		}
	}
}

func encodeJSONCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSONPretty(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// renderLine prints a record the way the fixture programs do: the mapped
// value when a map script ran, else the text, else the bare value.
func renderLine(r Record) (string, error) {
	switch m := r.Mapped.(type) {
	case nil:
	case string:
		return m, nil
	default:
		b, err := json.Marshal(m)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if r.Text != "" {
		return r.Text, nil
	}
	return strconv.FormatInt(r.Value, 10), nil
}

func encodeLines(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range records {
		if r.Error != nil {
			continue
		}
		line, err := renderLine(r)
		if err != nil {
			return nil, err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// encodeReduced prints a reduced value as a single line.
func encodeReduced(v any) ([]byte, error) {
	line, err := renderLine(Record{Mapped: v})
	if err != nil {
		return nil, err
	}
	return []byte(line + "\n"), nil
}

func writeTo(stdout io.Writer, outPath string, data []byte) error {
	if outPath == "" || outPath == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%s: %v", writeOutputStage, err)
		}
	}
	return os.WriteFile(outPath, data, 0o644)
}

func writeOutputRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	outPath, format, pretty := getOutputSettings(in.Meta)
	env := in
	env.Records = append([]Record(nil), in.Records...)
	if env.Meta == nil {
		env.Meta = &Meta{}
	}
	metaCopy := *env.Meta
	metaCopy.ContractVersion = ContractVersion
	env.Meta = &metaCopy
	SortEnvelopeErrors(&env)
	stripErrorsIfNeeded(&env)

	var data []byte
	var err error
	switch format {
	case FormatLines:
		if env.Meta.Reduced != nil {
			data, err = encodeReduced(env.Meta.Reduced)
		} else {
			data, err = encodeLines(env.Records)
		}
	case FormatJSON:
		if pretty {
			data, err = encodeJSONPretty(env)
		} else {
			data, err = encodeJSONCompact(env)
		}
	case FormatYAML:
		if outPath != "" && outPath != "-" {
			if err := tracefile.Write(outPath, env); err != nil {
				return Envelope{}, fmt.Errorf("%s: %v", writeOutputStage, err)
			}
			return in, nil
		}
		data, err = tracefile.Marshal(env)
	default:
		return Envelope{}, fmt.Errorf("%s: unsupported format: %q", writeOutputStage, format)
	}
	if err != nil {
		return Envelope{}, err
	}
	if err := writeTo(deps.stdout(), outPath, data); err != nil {
		return Envelope{}, err
	}
	return in, nil
}

func init() { Register(writeOutputStage, writeOutputRunner) }
