package cli

import "testing"

func TestBuildReportStepIndexStableAcrossAppends(t *testing.T) {
	out := NewOutput()
	out.DisableColors()
	report := NewBuildReport(out, "public_html")

	first := report.StartStep("load content")
	// Force the step slice to reallocate before the first step ends.
	for i := 0; i < 16; i++ {
		report.StartStep("render pages")
	}
	report.EndStep(first, false, "boom")

	if report.steps[first].Success {
		t.Error("expected first step to be marked failed")
	}
	if report.steps[first].Error != "boom" {
		t.Errorf("expected first step error %q, got %q", "boom", report.steps[first].Error)
	}
	if report.steps[first].EndTime.IsZero() {
		t.Error("expected first step end time to be set")
	}
	if !report.HasFailures() {
		t.Error("expected report to record the failure")
	}
}
