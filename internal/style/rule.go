package style

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Function names the mapping from a row field value to an output style value.
type Function string

const (
	FunctionIdentity    Function = "identity"
	FunctionCategorical Function = "categorical"
	FunctionInterval    Function = "interval"
	FunctionLinear      Function = "linear"
)

// Rule declares how one visual property is derived: either a constant
// literal (Computed=false) or a function of a row field (Computed=true).
// Domain and Range pair positionally; both are raw strings parsed through
// the target property's parser at scale-build time.
type Rule struct {
	Computed bool     `json:"computed" doc:"Whether the rule is data-driven (true) or a constant (false)"`
	Value    string   `json:"value,omitempty" doc:"Constant literal, used when computed=false" example:"#3388ff"`
	Field    string   `json:"field,omitempty" doc:"Row field driving the computation" example:"population"`
	Function Function `json:"function,omitempty" doc:"Scale function mapping field values to style values"`
	Domain   []string `json:"domain,omitempty" doc:"Input breakpoints or category keys, paired with range by index"`
	Range    []string `json:"range,omitempty" doc:"Output values corresponding to domain entries"`
}

// Status classifies a rule for UI labeling and resolver short-circuiting.
type Status int

const (
	// StatusNone means the rule contributes nothing; the property default applies.
	StatusNone Status = iota
	// StatusGlobal means a constant value applies to every feature.
	StatusGlobal
	// StatusComputed means the value is derived per feature from a row field.
	StatusComputed
)

func (s Status) String() string {
	switch s {
	case StatusGlobal:
		return "global"
	case StatusComputed:
		return "computed"
	default:
		return "none"
	}
}

// Status returns the rule's classification.
func (r Rule) Status() Status {
	switch {
	case !r.Computed && r.Value != "":
		return StatusGlobal
	case r.Computed && r.Function != "":
		return StatusComputed
	default:
		return StatusNone
	}
}

// fingerprint returns a structural hash of the rule's styling-relevant
// fields for the given property. Keying scales by content rather than rule
// identity means an in-place edit of domain or range produces a fresh key,
// so a stale scale can never be served for changed data.
func (r Rule) fingerprint(p Property) uint64 {
	h := xxhash.New()
	hashString(h, string(p))
	if r.Computed {
		hashString(h, "c")
	} else {
		hashString(h, "s")
	}
	hashString(h, r.Value)
	hashString(h, r.Field)
	hashString(h, string(r.Function))
	for _, d := range r.Domain {
		hashString(h, d)
	}
	hashString(h, "|")
	for _, rg := range r.Range {
		hashString(h, rg)
	}
	return h.Sum64()
}

// hashString writes a length-prefixed string so adjacent fields cannot
// collide by concatenation.
func hashString(h *xxhash.Digest, s string) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	_, _ = h.Write(n[:])
	_, _ = h.WriteString(s)
}
