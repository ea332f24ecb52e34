// internal/core/domain/outcome.go
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind string

const (
	// OutcomeBanner: the connection succeeded and the read phase ended on EOF
	// or after the line budget. Text may be empty for a silent service.
	OutcomeBanner OutcomeKind = "banner"

	// OutcomeUnreachable: no connection could be established, or it was dropped.
	OutcomeUnreachable OutcomeKind = "unreachable"

	// OutcomeTimeout: the read budget elapsed. Text holds any partial data.
	OutcomeTimeout OutcomeKind = "timeout"
)

// IsValid reports whether k is a known kind.
func (k OutcomeKind) IsValid() bool {
	switch k {
	case OutcomeBanner, OutcomeUnreachable, OutcomeTimeout:
		return true
	default:
		return false
	}
}

// String returns the kind name.
func (k OutcomeKind) String() string {
	return string(k)
}

// Outcome is the classified result of probing a single target.
// Build values with Banner, Unreachable or Timeout.
type Outcome struct {
	Kind  OutcomeKind
	Text  string
	Cause error
}

// Banner builds a successful outcome.
func Banner(text string) Outcome {
	return Outcome{Kind: OutcomeBanner, Text: text}
}

// Unreachable builds an outcome for a connection that failed or dropped.
func Unreachable(cause error) Outcome {
	if cause == nil {
		cause = ErrUnreachable
	}
	return Outcome{Kind: OutcomeUnreachable, Cause: cause}
}

// Timeout builds an outcome for an exceeded read budget, keeping the partial text.
func Timeout(partial string) Outcome {
	return Outcome{Kind: OutcomeTimeout, Text: partial, Cause: ErrTimeout}
}

// IsBanner reports whether the outcome is a Banner.
func (o Outcome) IsBanner() bool { return o.Kind == OutcomeBanner }

// IsUnreachable reports whether the outcome is Unreachable.
func (o Outcome) IsUnreachable() bool { return o.Kind == OutcomeUnreachable }

// IsTimeout reports whether the outcome is a Timeout.
func (o Outcome) IsTimeout() bool { return o.Kind == OutcomeTimeout }

// HasText reports whether any banner data was captured, complete or partial.
func (o Outcome) HasText() bool {
	return strings.TrimSpace(o.Text) != ""
}

// Lines splits the captured text into its lines, without terminators.
func (o Outcome) Lines() []string {
	text := strings.TrimSuffix(o.Text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeBanner:
		return fmt.Sprintf("banner(%d bytes)", len(o.Text))
	case OutcomeUnreachable:
		return fmt.Sprintf("unreachable(%v)", o.Cause)
	case OutcomeTimeout:
		return fmt.Sprintf("timeout(%d bytes)", len(o.Text))
	default:
		return "unknown"
	}
}

// outcomeJSON is the wire form; errors do not marshal on their own.
type outcomeJSON struct {
	Kind  OutcomeKind `json:"kind" yaml:"kind"`
	Text  string      `json:"text,omitempty" yaml:"text,omitempty"`
	Cause string      `json:"cause,omitempty" yaml:"cause,omitempty"`
}

func (o Outcome) wire() outcomeJSON {
	w := outcomeJSON{Kind: o.Kind, Text: o.Text}
	if o.Cause != nil {
		w.Cause = o.Cause.Error()
	}
	return w
}

// MarshalJSON implements json.Marshaler.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (o Outcome) MarshalYAML() (interface{}, error) {
	return o.wire(), nil
}
