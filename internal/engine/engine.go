// Package engine plays a story graph: it tracks the player's choice path,
// derives the position in the graph from that path, and applies the attribute
// delta of the ending the player reaches.
//
// A PlaySession is not safe for concurrent use; it belongs to one
// presentation flow. The package performs no I/O.
package engine

import (
	"fmt"

	"github.com/tatianab/napele/internal/models"
)

// RootContainer is the container key reported while the session is at the intro.
const RootContainer = "intro"

// Outcome is the ending reached by a session.
type Outcome struct {
	Key        string
	Title      string
	Text       string
	Attributes models.Attributes
}

// PlaySession is one playthrough of a story graph. The zero value is not
// usable; create sessions with NewSession or Resume.
type PlaySession struct {
	graph   *models.StoryGraph
	path    []string
	attrs   models.Attributes
	outcome bool
}

// NewSession starts a playthrough at the intro of g.
func NewSession(g *models.StoryGraph) *PlaySession {
	return &PlaySession{
		graph: g,
		attrs: models.ZeroAttributes(),
	}
}

// Resume rebuilds a session by replaying path choice by choice, so
// attributes and outcome state end up exactly as they were during play.
func Resume(g *models.StoryGraph, path []string) (*PlaySession, error) {
	s := NewSession(g)
	for i, key := range path {
		if err := s.Advance(key); err != nil {
			return nil, fmt.Errorf("resume step %d (%q): %w", i, key, err)
		}
	}
	return s, nil
}

// Graph returns the story graph the session plays.
func (s *PlaySession) Graph() *models.StoryGraph {
	return s.graph
}

// Path returns a copy of the choice path.
func (s *PlaySession) Path() []string {
	out := make([]string, len(s.path))
	copy(out, s.path)
	return out
}

// InOutcome reports whether the last Advance reached a terminal segment.
func (s *PlaySession) InOutcome() bool {
	return s.outcome
}

// PlayerAttributes returns a snapshot of the accumulated attributes.
func (s *PlaySession) PlayerAttributes() models.Attributes {
	return s.attrs.Clone()
}

// CurrentSegment returns the segment at the end of the path, or the intro
// when the path is empty. It reports false if the path cannot be resolved.
func (s *PlaySession) CurrentSegment() (models.Segment, bool) {
	_, seg, err := walk(s.graph, s.path)
	if err != nil {
		return models.Segment{}, false
	}
	return seg, true
}

// ContainerKey returns the key of the container holding the current
// segment, RootContainer at the intro.
func (s *PlaySession) ContainerKey() (string, error) {
	container, _, err := walk(s.graph, s.path)
	return container, err
}

// Advance selects choiceID from the current segment's choices.
//
// Reaching a terminal segment applies its attribute delta and puts the
// session in the outcome state. On error the path is left as it was.
func (s *PlaySession) Advance(choiceID string) error {
	if choiceID == "" {
		return ErrNoSelection
	}
	if s.outcome {
		return fmt.Errorf("%w: the story has ended", ErrNoSelection)
	}

	cur, ok := s.CurrentSegment()
	if !ok {
		return fmt.Errorf("%w: current segment not found", ErrCorruption)
	}
	if cur.Kind != models.KindChoice {
		return fmt.Errorf("%w: current segment %q has no choices", ErrMalformedSegment, cur.Title)
	}
	if !cur.HasChoice(choiceID) {
		return fmt.Errorf("%w: %q is not a choice of %q", ErrNoSelection, choiceID, cur.Title)
	}

	s.path = append(s.path, choiceID)
	next, ok := s.graph.Lookup(cur.Next, choiceID)
	if !ok {
		s.pop()
		return fmt.Errorf("%w: %q missing from container %q", ErrCorruption, choiceID, cur.Next)
	}

	switch next.Kind {
	case models.KindChoice:
		return nil
	case models.KindTerminal:
		s.attrs.Apply(next.Attributes)
		s.outcome = true
		return nil
	default:
		s.pop()
		return fmt.Errorf("%w: %s/%s", ErrMalformedSegment, cur.Next, choiceID)
	}
}

// GoBack undoes the last choice. Attributes return to zero and the position
// is recomputed by replaying the remaining path from the intro. If the replay
// fails the session is restarted and an ErrCorruption error is returned.
func (s *PlaySession) GoBack() error {
	if len(s.path) == 0 {
		return ErrAtRoot
	}

	s.pop()
	s.attrs = models.ZeroAttributes()
	s.outcome = false

	if _, _, err := walk(s.graph, s.path); err != nil {
		s.Restart()
		return err
	}
	return nil
}

// Restart returns the session to the intro with zeroed attributes.
func (s *PlaySession) Restart() {
	s.path = nil
	s.attrs = models.ZeroAttributes()
	s.outcome = false
}

// FinalOutcome returns the ending reached by the last Advance.
func (s *PlaySession) FinalOutcome() (Outcome, error) {
	if !s.outcome || len(s.path) == 0 {
		return Outcome{}, ErrNotAtOutcome
	}

	key := s.path[len(s.path)-1]
	container, err := DeriveContainer(s.graph, s.path[:len(s.path)-1])
	if err != nil {
		return Outcome{}, err
	}
	seg, ok := s.graph.Lookup(container, key)
	if !ok || seg.Kind != models.KindTerminal {
		return Outcome{}, fmt.Errorf("%w: ending %q not found in %q", ErrCorruption, key, container)
	}

	return Outcome{
		Key:        key,
		Title:      seg.Title,
		Text:       seg.Text,
		Attributes: s.attrs.Clone(),
	}, nil
}

func (s *PlaySession) pop() {
	s.path = s.path[:len(s.path)-1]
}

// DeriveContainer replays path from the intro and returns the key of the
// container in which the element following path is looked up. For a
// non-empty session path p, DeriveContainer(g, p[:len(p)-1]) is the
// container of the current segment.
//
// The cost is one lookup per path element.
func DeriveContainer(g *models.StoryGraph, path []string) (string, error) {
	_, seg, err := walk(g, path)
	if err != nil {
		return "", err
	}
	if seg.Kind != models.KindChoice {
		return "", fmt.Errorf("%w: path ends on a %s segment", ErrCorruption, seg.Kind)
	}
	return seg.Next, nil
}

// walk resolves every element of path in turn, starting at the intro. It
// returns the last segment and the container it was found in.
func walk(g *models.StoryGraph, path []string) (string, models.Segment, error) {
	container := RootContainer
	seg := g.Intro
	for i, key := range path {
		if seg.Kind != models.KindChoice {
			return "", models.Segment{}, fmt.Errorf("%w: step %d follows a %s segment", ErrCorruption, i, seg.Kind)
		}
		container = seg.Next
		next, ok := g.Lookup(container, key)
		if !ok {
			return "", models.Segment{}, fmt.Errorf("%w: step %d: %q not in container %q", ErrCorruption, i, key, container)
		}
		seg = next
	}
	return container, seg, nil
}
