package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/stretchr/testify/require"
)

// Locations returns "type@location" for every anomaly of the run, in report
// order.
func Locations(t *testing.T, result *HarnessResult) []string {
	t.Helper()
	require.NotNil(t, result.Result, "run produced no result: %v", result.Err)

	out := make([]string, 0, len(result.Result.Anomalies))
	for _, a := range result.Result.Anomalies {
		out = append(out, fmt.Sprintf("%s@%s", a.Type, a.Location))
	}
	return out
}

// AssertAnomaly checks that the run reported exactly count anomalies of typ at
// location.
func AssertAnomaly(t *testing.T, result *HarnessResult, typ model.AnomalyType, location string, count int) {
	t.Helper()

	want := fmt.Sprintf("%s@%s", typ, location)
	got := 0
	for _, l := range Locations(t, result) {
		if l == want {
			got++
		}
	}
	require.Equal(t, count, got, "anomaly %s: reported %v", want, Locations(t, result))
}

// AssertLogged checks that the log output contains substr.
func AssertLogged(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.True(t, strings.Contains(result.LogOutput, substr),
		"expected log output to contain %q", substr)
}
