package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ReportStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type PageProblem struct {
	Source  string
	Message string
}

// BuildReport accumulates what happened during one static build and
// prints a human summary at the end.
type BuildReport struct {
	ID          string
	out         *Output
	steps       []ReportStep
	warnings    []PageProblem
	startTime   time.Time
	pageCount   int
	outputDir   string
	hasFailures bool
}

func NewBuildReport(out *Output, outputDir string) *BuildReport {
	return &BuildReport{
		ID:        uuid.NewString(),
		out:       out,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetPageCount(count int) {
	r.pageCount = count
}

// StartStep returns the step's index; appending further steps may move
// the backing array, so callers hold the index rather than a pointer.
func (r *BuildReport) StartStep(name string) int {
	r.steps = append(r.steps, ReportStep{
		Name:      name,
		StartTime: time.Now(),
	})
	return len(r.steps) - 1
}

func (r *BuildReport) EndStep(step int, success bool, errMsg string) {
	s := &r.steps[step]
	s.EndTime = time.Now()
	s.Success = success
	s.Error = errMsg
	if !success {
		r.hasFailures = true
	}
}

func (r *BuildReport) AddWarning(source, msg string) {
	r.warnings = append(r.warnings, PageProblem{Source: source, Message: msg})
}

func (r *BuildReport) HasFailures() bool {
	return r.hasFailures
}

func (r *BuildReport) PrintSummary() {
	elapsed := time.Since(r.startTime).Round(time.Millisecond)

	for _, step := range r.steps {
		d := step.EndTime.Sub(step.StartTime).Round(time.Millisecond)
		if step.Success {
			r.out.PrintSuccess("%s %s", step.Name, r.out.Gray(d.String()))
		} else {
			r.out.PrintError("%s: %s", step.Name, step.Error)
		}
	}

	for _, warn := range r.warnings {
		r.out.PrintWarning("%s: %s", warn.Source, warn.Message)
	}

	fmt.Println()
	if r.hasFailures {
		r.out.PrintError("build %s failed after %s", r.ID[:8], elapsed)
		return
	}
	r.out.PrintDone(fmt.Sprintf("Built %d pages into %s in %s", r.pageCount, r.outputDir, elapsed))
}
