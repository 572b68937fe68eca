package run

import "github.com/flarebyte/surface-fixtures/internal/stage"

const (
	exitCodeSuccess = 0
	exitCodeExecErr = 1
)

type runExitError struct {
	code int
	msg  string
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }

func keepGoingMode(meta *stage.Meta) bool {
	return meta != nil && meta.Errors != nil && meta.Errors.Mode == "keep-going"
}

func countRecordResults(records []stage.Record) (successes int, failures int) {
	for _, r := range records {
		if r.Error != nil {
			failures++
		} else {
			successes++
		}
	}
	return
}

func hasFailures(env stage.Envelope) bool {
	_, failures := countRecordResults(env.Records)
	return failures > 0 || len(env.Errors) > 0
}

// evaluateRunExit fails a keep-going run that produced errors and no
// successful record. Fail-fast runs have already returned their error.
func evaluateRunExit(env stage.Envelope) error {
	if !keepGoingMode(env.Meta) {
		return nil
	}
	if !hasFailures(env) {
		return nil
	}
	if stage.HasSuccess(env.Records) {
		return nil
	}
	return runExitError{code: exitCodeExecErr, msg: "keep-going: no successful records"}
}
