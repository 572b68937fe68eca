package stage

import (
	"sort"
	"strings"
)

const (
	modeFailFast  = "fail-fast"
	modeKeepGoing = "keep-going"
)

// RecError is a per-record error payload.
type RecError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func errorMode(meta *Meta) (mode string, embed bool) {
	mode = modeFailFast
	if meta != nil && meta.Errors != nil {
		if meta.Errors.Mode != "" {
			mode = meta.Errors.Mode
		}
		embed = meta.Errors.EmbedErrors
	}
	return
}

func sanitizeErrorMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}

func recordFailure(rec Record, stageName, msg string, embed bool) (Record, *Error) {
	rr := rec
	if embed {
		rr.Error = &RecError{Stage: stageName, Message: msg}
	}
	return rr, &Error{Stage: stageName, Locator: rec.key(), Message: msg}
}

func accumulateStageError(envErrs *[]Error, firstErr *error, envE *Error, fatal error) {
	if envE != nil {
		*envErrs = append(*envErrs, *envE)
	}
	if fatal != nil && *firstErr == nil {
		*firstErr = fatal
	}
}

func appendSanitizedErrors(out *Envelope, envErrs []Error) {
	if len(envErrs) == 0 {
		return
	}
	for _, e := range envErrs {
		e.Message = sanitizeErrorMessage(e.Message)
		out.Errors = append(out.Errors, e)
	}
	SortEnvelopeErrors(out)
}

// SortEnvelopeErrors sorts errors by (stage, locator, message) deterministically.
func SortEnvelopeErrors(env *Envelope) {
	if env == nil || len(env.Errors) == 0 {
		return
	}
	sort.SliceStable(env.Errors, func(i, j int) bool {
		ei, ej := env.Errors[i], env.Errors[j]
		if ei.Stage != ej.Stage {
			return ei.Stage < ej.Stage
		}
		if ei.Locator != ej.Locator {
			return ei.Locator < ej.Locator
		}
		return ei.Message < ej.Message
	})
}

// HasSuccess reports whether any record completed without error.
func HasSuccess(records []Record) bool {
	for _, r := range records {
		if r.Error == nil {
			return true
		}
	}
	return false
}
