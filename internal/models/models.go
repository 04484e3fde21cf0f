package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Attribute names one of the closed set of player attributes.
type Attribute string

const (
	Justice    Attribute = "Justice"
	Reputation Attribute = "Reputation"
	Empathy    Attribute = "Empathy"
	Stress     Attribute = "Stress"
)

// AllAttributes lists the attribute set in display order.
var AllAttributes = []Attribute{Justice, Reputation, Empathy, Stress}

// Known reports whether a is part of the attribute set.
func (a Attribute) Known() bool {
	for _, known := range AllAttributes {
		if a == known {
			return true
		}
	}
	return false
}

// Attributes maps attribute names to signed totals (or deltas, on terminal segments).
type Attributes map[Attribute]int

// ZeroAttributes returns a map holding every attribute at zero.
func ZeroAttributes() Attributes {
	attrs := make(Attributes, len(AllAttributes))
	for _, a := range AllAttributes {
		attrs[a] = 0
	}
	return attrs
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Apply adds delta into a. Names outside the attribute set are ignored.
func (a Attributes) Apply(delta Attributes) {
	for k, v := range delta {
		if k.Known() {
			a[k] += v
		}
	}
}

// IsZero reports whether every attribute is zero.
func (a Attributes) IsZero() bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}
	return true
}

// SegmentKind discriminates the Segment variants.
type SegmentKind int

const (
	// KindInvalid marks a segment with neither choices nor an attribute delta.
	KindInvalid SegmentKind = iota
	// KindChoice is an inner node: text plus choices into the Next container.
	KindChoice
	// KindTerminal is an ending carrying an attribute delta.
	KindTerminal
)

func (k SegmentKind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindTerminal:
		return "terminal"
	default:
		return "invalid"
	}
}

// Choice is one selectable option of a choice segment.
type Choice struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// Segment is one node of the story graph. Kind decides which fields are meaningful:
// Choices and Next for KindChoice, Attributes for KindTerminal.
type Segment struct {
	Kind       SegmentKind
	Title      string
	Text       string
	Choices    []Choice
	Next       string
	Attributes Attributes
}

// rawSegment is the on-disk shape of a segment.
type rawSegment struct {
	Title      string     `yaml:"title"`
	Text       string     `yaml:"text"`
	Choices    []Choice   `yaml:"choices,omitempty"`
	Next       string     `yaml:"next_container_key,omitempty"`
	Attributes Attributes `yaml:"attributes,omitempty"`
}

// UnmarshalYAML derives Kind from which keys are present.
func (s *Segment) UnmarshalYAML(value *yaml.Node) error {
	var raw rawSegment
	if err := value.Decode(&raw); err != nil {
		return err
	}
	hasNext := raw.Next != ""
	hasAttrs := raw.Attributes != nil
	if hasNext && hasAttrs {
		return fmt.Errorf("line %d: segment %q has both next_container_key and attributes", value.Line, raw.Title)
	}

	*s = Segment{Title: raw.Title, Text: raw.Text}
	switch {
	case hasNext:
		s.Kind = KindChoice
		s.Choices = raw.Choices
		s.Next = raw.Next
	case hasAttrs:
		s.Kind = KindTerminal
		s.Attributes = raw.Attributes
	default:
		s.Kind = KindInvalid
		s.Choices = raw.Choices
	}
	return nil
}

// MarshalYAML writes the segment back in its on-disk shape.
func (s Segment) MarshalYAML() (any, error) {
	raw := rawSegment{Title: s.Title, Text: s.Text}
	switch s.Kind {
	case KindChoice:
		raw.Choices = s.Choices
		raw.Next = s.Next
	case KindTerminal:
		raw.Attributes = s.Attributes
	}
	return raw, nil
}

// HasChoice reports whether target is one of the segment's choice targets.
func (s Segment) HasChoice(target string) bool {
	for _, c := range s.Choices {
		if c.Target == target {
			return true
		}
	}
	return false
}

// Container groups the segments reachable from a common point, keyed by segment key.
type Container map[string]Segment

// StoryGraph is the static story definition. It is never mutated after loading.
type StoryGraph struct {
	Title      string               `yaml:"title"`
	Intro      Segment              `yaml:"intro"`
	Containers map[string]Container `yaml:"containers"`
	Epilogue   string               `yaml:"epilogue"`
	Reflection string               `yaml:"reflection"`
}

// Lookup returns the segment stored under key in the named container.
func (g *StoryGraph) Lookup(container, key string) (Segment, bool) {
	c, ok := g.Containers[container]
	if !ok {
		return Segment{}, false
	}
	seg, ok := c[key]
	return seg, ok
}
