// Package report holds the result of analysing a graph: its size, lower
// bounds on the arrangement cost and the cost of each candidate ordering.
//
// Reports are plain data. They encode to JSON (API responses, cache entries,
// stored archives), YAML (config-friendly output) and a fixed-width text
// table for terminals that should not get colour.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/relabel/pkg/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatYAML: true,
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: text, json, yaml)", format)
	}
	return nil
}

// Report summarises one analysis run.
type Report struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty" bson:"_id,omitempty"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	GraphHash string     `json:"graph_hash" yaml:"graph_hash" bson:"graph_hash"`
	Vertices  int        `json:"vertices" yaml:"vertices" bson:"vertices"`
	Edges     int        `json:"edges" yaml:"edges" bson:"edges"`
	MaxDegree int        `json:"max_degree" yaml:"max_degree" bson:"max_degree"`
	Bounds    []Bound    `json:"bounds" yaml:"bounds" bson:"bounds"`
	Orderings []Ordering `json:"orderings" yaml:"orderings" bson:"orderings"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at" bson:"created_at"`
}

// Bound is one lower bound on the arrangement cost.
type Bound struct {
	Name    string `json:"name" yaml:"name" bson:"name"`
	Value   int    `json:"value" yaml:"value" bson:"value"`
	Skipped string `json:"skipped,omitempty" yaml:"skipped,omitempty" bson:"skipped,omitempty"`
}

// Ordering is the outcome of one orderer.
type Ordering struct {
	Name     string        `json:"name" yaml:"name" bson:"name"`
	Cost     int           `json:"cost" yaml:"cost" bson:"cost"`
	Duration time.Duration `json:"duration_ns" yaml:"duration" bson:"duration_ns"`
	Skipped  string        `json:"skipped,omitempty" yaml:"skipped,omitempty" bson:"skipped,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty" bson:"error,omitempty"`
}

// OK reports whether the ordering produced a cost.
func (o Ordering) OK() bool { return o.Skipped == "" && o.Error == "" }

// OK reports whether the bound produced a value.
func (b Bound) OK() bool { return b.Skipped == "" }

// LowerBound returns the largest computed bound, or 0 if none were computed.
func (r *Report) LowerBound() int {
	lb := 0
	for _, b := range r.Bounds {
		if b.OK() {
			lb = max(lb, b.Value)
		}
	}
	return lb
}

// Best returns the cheapest successful ordering. Ties go to the earlier one.
func (r *Report) Best() (Ordering, bool) {
	var best Ordering
	found := false
	for _, o := range r.Orderings {
		if o.OK() && (!found || o.Cost < best.Cost) {
			best, found = o, true
		}
	}
	return best, found
}

// Ordering returns the named ordering.
func (r *Report) Ordering(name string) (Ordering, bool) {
	i := slices.IndexFunc(r.Orderings, func(o Ordering) bool { return o.Name == name })
	if i < 0 {
		return Ordering{}, false
	}
	return r.Orderings[i], true
}

// Ratio returns cost / lower bound for an ordering, or 0 without a bound.
func (r *Report) Ratio(o Ordering) float64 {
	lb := r.LowerBound()
	if lb <= 0 || !o.OK() {
		return 0
	}
	return float64(o.Cost) / float64(lb)
}

// Encode writes r to w in the given format.
func (r *Report) Encode(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return wrapEncode(enc.Encode(r))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return wrapEncode(err)
		}
		return wrapEncode(enc.Close())
	case FormatText:
		return wrapEncode(r.writeText(w))
	default:
		return ValidateFormat(format)
	}
}

func wrapEncode(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
}

// Decode reads a report in JSON or YAML.
func Decode(rd io.Reader, format string) (*Report, error) {
	var r Report
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(rd).Decode(&r)
	case FormatYAML:
		err = yaml.NewDecoder(rd).Decode(&r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot decode %q reports", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode report")
	}
	return &r, nil
}

// Marshal encodes r as compact JSON for caches and stores.
func (r *Report) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal decodes JSON produced by Marshal.
func Unmarshal(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode report")
	}
	return &r, nil
}

// writeText prints one line per measure, right-aligned like a classic
// terminal report.
func (r *Report) writeText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d vertices, %d edges\n", r.Vertices, r.Edges)
	for _, bd := range r.Bounds {
		if !bd.OK() {
			fmt.Fprintf(&b, "%20s LB: %15s\n", bd.Name, "skipped")
			continue
		}
		fmt.Fprintf(&b, "%20s LB: %15d\n", bd.Name, bd.Value)
	}
	for _, o := range r.Orderings {
		switch {
		case o.Skipped != "":
			fmt.Fprintf(&b, "%20s LA measure: %15s\n", o.Name, "skipped")
		case o.Error != "":
			fmt.Fprintf(&b, "%20s LA measure: %15s\n", o.Name, "failed")
		default:
			fmt.Fprintf(&b, "%20s LA measure: %15d\n", o.Name, o.Cost)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
