package pipeline

import (
	"sort"
	"sync"
)

// Failure is one unit of work that did not complete
type Failure struct {
	// Change is the file whose change triggered the work
	Change string

	// Target is the output path, when one had been resolved
	Target string

	// Template is the template file, when one was involved
	Template string

	Err error
}

// BatchReport summarizes the processing of one change batch
type BatchReport struct {
	// Changes is the number of changes in the batch
	Changes int

	// Matches counts (change, definition) pairs whose trigger matched
	Matches int

	// Reloaded is set when a manifest change caused a registry rescan
	Reloaded bool

	// Invalidated lists template files dropped from the render cache
	Invalidated []string

	// Written lists generated files, sorted
	Written []string

	Failures []Failure

	mu sync.Mutex
}

// OK reports whether every unit of work succeeded
func (r *BatchReport) OK() bool {
	return len(r.Failures) == 0
}

func (r *BatchReport) addWritten(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Written = append(r.Written, path)
}

func (r *BatchReport) addFailure(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, f)
}

func (r *BatchReport) finish() {
	sort.Strings(r.Written)
	sort.SliceStable(r.Failures, func(i, j int) bool {
		if r.Failures[i].Change != r.Failures[j].Change {
			return r.Failures[i].Change < r.Failures[j].Change
		}
		return r.Failures[i].Target < r.Failures[j].Target
	})
}
