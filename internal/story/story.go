// Package story holds the bundled story content and the checks every story
// graph must pass before a session can be played on it.
package story

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tatianab/napele/internal/models"
	"gopkg.in/yaml.v3"
)

// EliasID identifies the bundled story in menus and progress files.
const EliasID = "elias_story"

//go:embed elias.yaml
var eliasYAML []byte

var (
	eliasOnce  sync.Once
	eliasGraph *models.StoryGraph
	eliasErr   error
)

// Elias returns the parsed and validated "O Julgamento de Elias" graph.
// The graph is shared and must not be modified.
func Elias() (*models.StoryGraph, error) {
	eliasOnce.Do(func() {
		eliasGraph, eliasErr = Parse(eliasYAML)
		if eliasErr == nil {
			eliasErr = Validate(eliasGraph)
		}
	})
	return eliasGraph, eliasErr
}

// Parse decodes a story graph from YAML. It does not validate it.
func Parse(data []byte) (*models.StoryGraph, error) {
	var g models.StoryGraph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse story: %w", err)
	}
	return &g, nil
}

// Validate checks the structural rules of a story graph and reports every
// violation found, joined into one error.
//
// Segment keys must be unique across all containers because sessions resolve
// a key only inside the container named by the previous segment.
func Validate(g *models.StoryGraph) error {
	if g == nil {
		return errors.New("story graph is nil")
	}

	var errs []error
	report := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if g.Intro.Kind != models.KindChoice {
		report("intro must be a choice segment, got %s", g.Intro.Kind)
	}
	checkChoices("intro", g.Intro, g, report)

	owner := make(map[string]string)
	for _, cname := range sortedKeys(g.Containers) {
		container := g.Containers[cname]
		for _, key := range sortedKeys(container) {
			seg := container[key]
			where := fmt.Sprintf("%s/%s", cname, key)
			if prev, dup := owner[key]; dup {
				report("segment key %q appears in both %s and %s", key, prev, cname)
			} else {
				owner[key] = cname
			}

			switch seg.Kind {
			case models.KindChoice:
				checkChoices(where, seg, g, report)
			case models.KindTerminal:
				for attr := range seg.Attributes {
					if !attr.Known() {
						report("%s: unknown attribute %q", where, attr)
					}
				}
			default:
				report("%s: segment has neither next_container_key nor attributes", where)
			}
		}
	}

	if len(errs) == 0 {
		// Dangling references would make the walk below report noise.
		if err := checkAcyclic(g); err != nil {
			errs = append(errs, err)
		}
		errs = append(errs, checkReachable(g)...)
	}
	return errors.Join(errs...)
}

func checkChoices(where string, seg models.Segment, g *models.StoryGraph, report func(string, ...any)) {
	if seg.Kind != models.KindChoice {
		return
	}
	if len(seg.Choices) == 0 {
		report("%s: choice segment has no choices", where)
	}
	container, ok := g.Containers[seg.Next]
	if !ok {
		report("%s: next container %q does not exist", where, seg.Next)
	}
	seen := make(map[string]bool, len(seg.Choices))
	for _, c := range seg.Choices {
		if c.Target == "" {
			report("%s: choice %q has an empty target", where, c.Label)
			continue
		}
		if seen[c.Target] {
			report("%s: duplicate choice target %q", where, c.Target)
		}
		seen[c.Target] = true
		if ok {
			if _, exists := container[c.Target]; !exists {
				report("%s: choice target %q missing from container %q", where, c.Target, seg.Next)
			}
		}
	}
}

// checkAcyclic walks the graph from intro and fails on the first back edge.
func checkAcyclic(g *models.StoryGraph) error {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int)

	var visit func(id string, seg models.Segment) error
	visit = func(id string, seg models.Segment) error {
		state[id] = onStack
		if seg.Kind == models.KindChoice {
			for _, c := range seg.Choices {
				next, ok := g.Lookup(seg.Next, c.Target)
				if !ok {
					continue
				}
				childID := seg.Next + "/" + c.Target
				switch state[childID] {
				case onStack:
					return fmt.Errorf("cycle through %s", childID)
				case unvisited:
					if err := visit(childID, next); err != nil {
						return err
					}
				}
			}
		}
		state[id] = done
		return nil
	}
	return visit("intro", g.Intro)
}

func checkReachable(g *models.StoryGraph) []error {
	reached := make(map[string]bool)
	queue := []models.Segment{g.Intro}
	for len(queue) > 0 {
		seg := queue[0]
		queue = queue[1:]
		if seg.Kind != models.KindChoice {
			continue
		}
		for _, c := range seg.Choices {
			id := seg.Next + "/" + c.Target
			if reached[id] {
				continue
			}
			reached[id] = true
			if next, ok := g.Lookup(seg.Next, c.Target); ok {
				queue = append(queue, next)
			}
		}
	}

	var errs []error
	for _, cname := range sortedKeys(g.Containers) {
		for _, key := range sortedKeys(g.Containers[cname]) {
			if !reached[cname+"/"+key] {
				errs = append(errs, fmt.Errorf("%s/%s: unreachable from intro", cname, key))
			}
		}
	}
	return errs
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
