package engine

import "github.com/tatianab/napele/internal/models"

// ProfileKey identifies one of the end-of-story profiles.
type ProfileKey string

const (
	ProfileSilentAlly      ProfileKey = "silent_ally"
	ProfileAgentOfChange   ProfileKey = "agent_of_change"
	ProfileNeutralObserver ProfileKey = "neutral_observer"
)

// Profile is the classification of a finished playthrough.
type Profile struct {
	Key         ProfileKey
	Name        string
	Description string
}

var profiles = map[ProfileKey]Profile{
	ProfileSilentAlly: {
		Key:         ProfileSilentAlly,
		Name:        "Aliado Silencioso",
		Description: "Você agiu com compaixão e buscou a justiça pelos meios menos ostensivos, construindo uma reputação de solidez e confiabilidade nos bastidores. Suas ações, embora discretas, tiveram um impacto significativo na vida de Elias e na reforma do sistema.",
	},
	ProfileAgentOfChange: {
		Key:         ProfileAgentOfChange,
		Name:        "Agente de Mudança",
		Description: "Você se tornou um catalisador para transformações profundas no sistema judiciário, não hesitando em confrontar a corrupção e promover a transparência. Suas escolhas, embora desafiadoras, resultaram em um impacto duradouro e positivo, mas com um custo pessoal de estresse.",
	},
	ProfileNeutralObserver: {
		Key:         ProfileNeutralObserver,
		Name:        "Observador Neutro",
		Description: "Suas decisões foram predominantemente técnicas e focadas na aplicação da lei, por vezes ignorando as nuances humanas ou a pressão externa. Sua postura, embora imparcial, pode ter levado a desfechos questionáveis ou a uma percepção de frieza, resultando em estresse variável.",
	},
}

// Classify maps final attribute totals to a profile. Rules are checked in
// order and the first match wins; missing attributes count as zero.
func Classify(a models.Attributes) Profile {
	justice := a[models.Justice]
	reputation := a[models.Reputation]
	empathy := a[models.Empathy]
	stress := a[models.Stress]

	switch {
	case empathy >= 7 && justice >= 5 && stress <= 8:
		return profiles[ProfileSilentAlly]
	case justice >= 8 && (reputation >= 7 || empathy >= 7) && stress <= 10:
		return profiles[ProfileAgentOfChange]
	default:
		return profiles[ProfileNeutralObserver]
	}
}
