package verify

import "fmt"

// Verdict is the final outcome of a verification run.
type Verdict string

const (
	// VerdictConfirmed means every probe behaved as the visibility rule demands.
	VerdictConfirmed Verdict = "CONFIRMED"
	// VerdictInsufficientFixtureData means the environment lacks the rows
	// needed to exercise the rule, so nothing was proven either way.
	VerdictInsufficientFixtureData Verdict = "INSUFFICIENT_FIXTURE_DATA"
	// VerdictInconclusive means a probe failed for reasons unrelated to the
	// rule, such as an unreachable API or a malformed response.
	VerdictInconclusive Verdict = "INCONCLUSIVE"
	// VerdictCancelled means the run was interrupted before completion.
	VerdictCancelled Verdict = "CANCELLED"
	// VerdictBugDetected means a private post leaked to a viewer who must
	// not observe it.
	VerdictBugDetected Verdict = "BUG_DETECTED"
)

// Assertion records one probe: what was expected and what was observed.
type Assertion struct {
	Name     string
	Expected string
	Observed string
	Passed   bool
}

// Report aggregates the assertions and verdict of one verification run.
type Report struct {
	Verdict    Verdict
	Detail     string
	Assertions []Assertion
}

// AddResult appends a judged assertion.
func (r *Report) AddResult(name, expected, observed string, passed bool) {
	r.Assertions = append(r.Assertions, Assertion{
		Name:     name,
		Expected: expected,
		Observed: observed,
		Passed:   passed,
	})
}

// ExitCode maps the verdict onto the process exit code contract: 0 when the
// rule held everywhere, 2 when a leak was observed, 1 for everything that
// proved nothing.
func (r *Report) ExitCode() int {
	switch r.Verdict {
	case VerdictConfirmed:
		return 0
	case VerdictBugDetected:
		return 2
	default:
		return 1
	}
}

// Summary renders a short human-readable account of the run.
func (r *Report) Summary() string {
	passed := 0
	for _, a := range r.Assertions {
		if a.Passed {
			passed++
		}
	}
	return fmt.Sprintf("verdict=%s checks=%d/%d detail=%s", r.Verdict, passed, len(r.Assertions), r.Detail)
}
