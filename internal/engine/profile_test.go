package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/napele/internal/models"
	"github.com/tatianab/napele/internal/story"
)

func attrs(justice, reputation, empathy, stress int) models.Attributes {
	return models.Attributes{
		models.Justice:    justice,
		models.Reputation: reputation,
		models.Empathy:    empathy,
		models.Stress:     stress,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		attrs models.Attributes
		want  ProfileKey
	}{
		{"rule 1 wins over rule 2", attrs(9, 8, 8, 5), ProfileSilentAlly},
		{"scenario E", attrs(8, 7, 7, 10), ProfileAgentOfChange},
		{"rule 1 lower bounds", attrs(5, -20, 7, 8), ProfileSilentAlly},
		{"rule 1 stress just over", attrs(5, 0, 7, 9), ProfileNeutralObserver},
		{"rule 2 via reputation", attrs(8, 7, 0, 10), ProfileAgentOfChange},
		{"rule 2 via empathy", attrs(8, 0, 7, 10), ProfileAgentOfChange},
		{"rule 2 stress over", attrs(10, 10, 10, 11), ProfileNeutralObserver},
		{"rule 2 justice short", attrs(7, 10, 6, 0), ProfileNeutralObserver},
		{"all zero", models.ZeroAttributes(), ProfileNeutralObserver},
		{"missing attributes count as zero", models.Attributes{}, ProfileNeutralObserver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.attrs).Key)
		})
	}
}

func TestClassifyIsTotalAndOrdered(t *testing.T) {
	names := map[string]bool{
		"Aliado Silencioso": true,
		"Agente de Mudança": true,
		"Observador Neutro": true,
	}
	for j := -15; j <= 15; j += 1 {
		for r := -15; r <= 15; r += 3 {
			for e := -10; e <= 12; e += 1 {
				for s := -5; s <= 15; s += 1 {
					p := Classify(attrs(j, r, e, s))
					require.True(t, names[p.Name], "unexpected profile %q", p.Name)
					require.NotEmpty(t, p.Description)

					rule1 := e >= 7 && j >= 5 && s <= 8
					rule2 := j >= 8 && (r >= 7 || e >= 7) && s <= 10
					switch {
					case rule1:
						require.Equal(t, ProfileSilentAlly, p.Key)
					case rule2:
						require.Equal(t, ProfileAgentOfChange, p.Key)
					default:
						require.Equal(t, ProfileNeutralObserver, p.Key)
					}
				}
			}
		}
	}
}

func TestClassifyEliasEndings(t *testing.T) {
	g, err := story.Elias()
	require.NoError(t, err)

	tests := map[string]ProfileKey{
		"1.1.1": ProfileNeutralObserver,
		"1.1.3": ProfileAgentOfChange,
		"2.2.1": ProfileSilentAlly,
		"3.3.3": ProfileSilentAlly,
	}
	for key, want := range tests {
		end, ok := g.Lookup("final_outcomes", key)
		require.True(t, ok, key)
		assert.Equal(t, want, Classify(end.Attributes).Key, key)
	}
}
