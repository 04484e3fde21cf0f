package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/napele/internal/models"
)

func TestEliasLoadsAndValidates(t *testing.T) {
	g, err := Elias()
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "O Julgamento de Elias", g.Title)
	assert.Equal(t, "choices_lvl1", g.Intro.Next)
	assert.Len(t, g.Intro.Choices, 3)
	assert.Len(t, g.Containers["final_outcomes"], 27)
	assert.NotEmpty(t, g.Epilogue)
	assert.NotEmpty(t, g.Reflection)

	end, ok := g.Lookup("final_outcomes", "1.1.1")
	require.True(t, ok)
	assert.Equal(t, models.KindTerminal, end.Kind)
	assert.Equal(t, "❌ Condenação Injusta ❌", end.Title)
	assert.Equal(t, models.Attributes{
		models.Justice:    -8,
		models.Reputation: -10,
		models.Empathy:    -5,
		models.Stress:     12,
	}, end.Attributes)
}

func TestEliasIsShared(t *testing.T) {
	a, err := Elias()
	require.NoError(t, err)
	b, err := Elias()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "dangling target",
			doc: `
intro: {title: i, text: t, choices: [{label: a, target: "x"}], next_container_key: c1}
containers:
  c1:
    "y": {title: y, text: t, attributes: {Justice: 1}}
`,
			want: []string{`choice target "x" missing from container "c1"`},
		},
		{
			name: "missing container",
			doc: `
intro: {title: i, text: t, choices: [{label: a, target: "x"}], next_container_key: nowhere}
containers: {}
`,
			want: []string{`next container "nowhere" does not exist`},
		},
		{
			name: "duplicate key across containers",
			doc: `
intro: {title: i, text: t, choices: [{label: a, target: "1"}], next_container_key: c1}
containers:
  c1:
    "1": {title: one, text: t, choices: [{label: b, target: "1"}], next_container_key: c2}
  c2:
    "1": {title: again, text: t, attributes: {Stress: 2}}
`,
			want: []string{`segment key "1" appears in both c1 and c2`},
		},
		{
			name: "unknown attribute and malformed segment",
			doc: `
intro: {title: i, text: t, choices: [{label: a, target: "1"}, {label: b, target: "2"}], next_container_key: c1}
containers:
  c1:
    "1": {title: one, text: t, attributes: {Luck: 2}}
    "2": {title: two, text: t}
`,
			want: []string{`unknown attribute "Luck"`, `c1/2: segment has neither`},
		},
		{
			name: "duplicate choice and empty choices",
			doc: `
intro: {title: i, text: t, choices: [{label: a, target: "1"}, {label: b, target: "1"}], next_container_key: c1}
containers:
  c1:
    "1": {title: one, text: t, choices: [], next_container_key: c2}
  c2: {}
`,
			want: []string{`duplicate choice target "1"`, `c1/1: choice segment has no choices`},
		},
		{
			name: "cycle",
			doc: `
intro: {title: i, text: t, choices: [{label: a, target: "1"}], next_container_key: c1}
containers:
  c1:
    "1": {title: one, text: t, choices: [{label: b, target: "2"}], next_container_key: c2}
  c2:
    "2": {title: two, text: t, choices: [{label: c, target: "1"}], next_container_key: c1}
`,
			want: []string{"cycle through c1/1"},
		},
		{
			name: "unreachable segment",
			doc: `
intro: {title: i, text: t, choices: [{label: a, target: "1"}], next_container_key: c1}
containers:
  c1:
    "1": {title: one, text: t, attributes: {Justice: 1}}
    "2": {title: two, text: t, attributes: {Justice: 2}}
`,
			want: []string{"c1/2: unreachable from intro"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Parse([]byte(tc.doc))
			require.NoError(t, err)

			err = Validate(g)
			require.Error(t, err)
			for _, want := range tc.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidateAcceptsMinimalGraph(t *testing.T) {
	g, err := Parse([]byte(`
intro: {title: i, text: t, choices: [{label: a, target: "1"}], next_container_key: c1}
containers:
  c1:
    "1": {title: one, text: t, attributes: {Justice: 1}}
`))
	require.NoError(t, err)
	assert.NoError(t, Validate(g))
	assert.Error(t, Validate(nil))
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("intro: ["))
	assert.Error(t, err)
}
