package stage

// Entry records one file operation, or one that was skipped.
type Entry struct {
	From   string `json:"from"`
	To     string `json:"to,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Report summarizes what a stage did to the library.
type Report struct {
	Stage   string      `json:"stage"`
	Applied []Entry     `json:"applied"`
	Skipped []Entry     `json:"skipped,omitempty"`
	Errors  []ItemError `json:"errors,omitempty"`
	Passes  int         `json:"passes,omitempty"`
	Note    string      `json:"note,omitempty"`
}

// NewReport returns an empty report for the named stage.
func NewReport(name string) *Report {
	return &Report{Stage: name, Applied: []Entry{}}
}

func (r *Report) Apply(from, to string) {
	r.Applied = append(r.Applied, Entry{From: from, To: to})
}

func (r *Report) Skip(from, to, reason string) {
	r.Skipped = append(r.Skipped, Entry{From: from, To: to, Reason: reason})
}

func (r *Report) Fail(path string, err error) {
	r.Errors = append(r.Errors, NewItemError(path, err))
}

// Failed reports whether any item errored.
func (r *Report) Failed() bool {
	return r != nil && len(r.Errors) > 0
}
