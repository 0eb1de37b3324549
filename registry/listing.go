package registry

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/glimte/callbacks-go/contracts"
)

// CallbackInfo is one row of a callback listing
type CallbackInfo struct {
	Label           contracts.Label
	Priority        float64
	Order           int // position within its priority bucket
	Phase           contracts.Phase
	TakesTargetArgs bool
	// TakesTargetResult is nil for phases other than post
	TakesTargetResult *bool
	// HandlesException is nil for phases other than exception
	HandlesException *bool
}

// ListCallbacks returns every registered callback sorted by label
func (r *Registry) ListCallbacks() []CallbackInfo {
	out := make([]CallbackInfo, 0, len(r.entries))
	for label, e := range r.entries {
		order, _ := r.indexes[e.Phase].Position(e.Priority, label)

		info := CallbackInfo{
			Label:           label,
			Priority:        e.Priority,
			Order:           order,
			Phase:           e.Phase,
			TakesTargetArgs: e.Convention.TakesTargetArgs(),
		}
		switch e.Phase {
		case contracts.PhasePost:
			v := e.Convention.TakesTargetResult()
			info.TakesTargetResult = &v
		case contracts.PhaseException:
			v := e.Convention.HandlesException()
			info.HandlesException = &v
		}

		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// WriteCallbacks writes the listing as a table
func (r *Registry) WriteCallbacks(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Label\tpriority\torder\ttype\ttakes args\ttakes result\t")

	for _, info := range r.ListCallbacks() {
		takesResult := "N/A"
		if info.TakesTargetResult != nil {
			takesResult = strconv.FormatBool(*info.TakesTargetResult)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\t%s\t\n",
			info.Label,
			strconv.FormatFloat(info.Priority, 'g', -1, 64),
			info.Order,
			info.Phase,
			info.TakesTargetArgs,
			takesResult,
		)
	}

	return tw.Flush()
}

// CallbacksInfo returns the table written by WriteCallbacks
func (r *Registry) CallbacksInfo() string {
	var b strings.Builder
	_ = r.WriteCallbacks(&b)
	return b.String()
}

// Describe returns a short usage text for the decorated target
func (r *Registry) Describe() string {
	kind := "function"
	if r.method {
		kind = "method"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nThis %s supports callbacks.\n", r.name, kind)
	for _, line := range [][2]string{
		{"AddPreCallback(callback)", "returns: label"},
		{"AddPostCallback(callback)", "returns: label"},
		{"AddExceptionCallback(callback)", "returns: label"},
		{"RemoveCallback(label)", "removes a single callback"},
		{"RemoveCallbacks()", "removes all callbacks"},
		{"ListCallbacks()", "returns callback information"},
	} {
		fmt.Fprintf(&b, "  %-40s %s\n", r.name+"."+line[0], line[1])
	}

	return b.String()
}
