package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAddResult(t *testing.T) {
	var report Report

	report.AddResult("author_feed", "visible", "visible", true)
	report.AddResult("other_user_feed", "hidden", "visible", false)

	require.Len(t, report.Assertions, 2)
	assert.Equal(t, Assertion{
		Name:     "author_feed",
		Expected: "visible",
		Observed: "visible",
		Passed:   true,
	}, report.Assertions[0])
	assert.False(t, report.Assertions[1].Passed)
}

func TestReportSummaryCountsPassedAssertions(t *testing.T) {
	report := Report{Verdict: VerdictBugDetected, Detail: "leak"}
	report.AddResult("a", "hidden", "hidden", true)
	report.AddResult("b", "hidden", "visible", false)
	report.AddResult("c", "200", "200", true)

	assert.Equal(t, "verdict=BUG_DETECTED checks=2/3 detail=leak", report.Summary())
}
