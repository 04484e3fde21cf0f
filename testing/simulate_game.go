package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/napele/internal/engine"
	"github.com/tatianab/napele/internal/models"
	"github.com/tatianab/napele/internal/narrator"
	"github.com/tatianab/napele/internal/story"
	"google.golang.org/api/option"
)

type simConfig struct {
	// Player is "all" to walk every path, or "llm" to let Gemini choose.
	Player       string `env:"NAPELE_SIM_PLAYER" envDefault:"all"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

func main() {
	ctx := context.Background()
	var cfg simConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	graph, err := story.Elias()
	if err != nil {
		log.Fatalf("Failed to load story: %v", err)
	}

	switch cfg.Player {
	case "all":
		playAll(graph)
	case "llm":
		if cfg.GeminiAPIKey == "" {
			log.Fatalf("GEMINI_API_KEY is required for the llm player")
		}
		playWithLLM(ctx, graph, cfg.GeminiAPIKey)
	default:
		log.Fatalf("Unknown NAPELE_SIM_PLAYER %q", cfg.Player)
	}
}

// playAll walks every path of the graph and prints each ending with its profile.
func playAll(g *models.StoryGraph) {
	counts := map[engine.ProfileKey]int{}
	var walk func(path []string)
	walk = func(path []string) {
		s, err := engine.Resume(g, path)
		if err != nil {
			log.Fatalf("Path %v does not replay: %v", path, err)
		}
		if s.InOutcome() {
			out, err := s.FinalOutcome()
			if err != nil {
				log.Fatalf("Path %v: %v", path, err)
			}
			p := engine.Classify(out.Attributes)
			counts[p.Key]++
			fmt.Printf("%-8s %-45s %s  -> %s\n", strings.Join(path, " > "), out.Title, formatAttributes(out.Attributes), p.Name)
			return
		}
		seg, _ := s.CurrentSegment()
		for _, c := range seg.Choices {
			walk(append(append([]string(nil), path...), c.Target))
		}
	}

	fmt.Printf("--- %s: every ending ---\n", g.Title)
	walk(nil)
	fmt.Println()
	for _, k := range []engine.ProfileKey{engine.ProfileSilentAlly, engine.ProfileAgentOfChange, engine.ProfileNeutralObserver} {
		fmt.Printf("%s: %d\n", k, counts[k])
	}
}

// playWithLLM lets a Gemini player pick each choice, then asks the narrator
// for the closing reflection.
func playWithLLM(ctx context.Context, g *models.StoryGraph, apiKey string) {
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel("gemini-2.5-flash")

	n, err := narrator.NewNarrator(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to create narrator: %v", err)
	}
	defer n.Close()

	s := engine.NewSession(g)
	for turn := 1; !s.InOutcome(); turn++ {
		seg, ok := s.CurrentSegment()
		if !ok {
			log.Fatalf("Session lost its place at %v", s.Path())
		}
		fmt.Printf("--- Turn %d: %s ---\n", turn, seg.Title)

		idx := getPlayerChoice(ctx, playerModel, seg)
		choice := seg.Choices[idx]
		fmt.Printf("Player chose: %s\n\n", choice.Label)
		if err := s.Advance(choice.Target); err != nil {
			log.Fatalf("Advance failed: %v", err)
		}
	}

	out, err := s.FinalOutcome()
	if err != nil {
		log.Fatalf("No outcome: %v", err)
	}
	profile := engine.Classify(out.Attributes)
	fmt.Printf("Ending: %s\n%s\n\n", out.Title, out.Text)
	fmt.Printf("Attributes: %s\nProfile: %s\n\n", formatAttributes(out.Attributes), profile.Name)

	reflection, err := n.Reflect(ctx, g.Title, out, profile)
	if err != nil {
		fmt.Printf("Reflection failed: %v\n", err)
		return
	}
	fmt.Printf("Reflection:\n%s\n", reflection)
}

func getPlayerChoice(ctx context.Context, model *genai.GenerativeModel, seg models.Segment) int {
	var options strings.Builder
	for i, c := range seg.Choices {
		fmt.Fprintf(&options, "%d. %s\n", i+1, c.Label)
	}

	prompt := fmt.Sprintf(`Você é um juiz jogando uma história interativa.
Situação: %s

%s

Opções:
%s
Responda APENAS com o número da opção escolhida.`, seg.Title, seg.Text, options.String())

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(string(text)), "."))
	if err != nil || n < 1 || n > len(seg.Choices) {
		return 0
	}
	return n - 1
}

func formatAttributes(a models.Attributes) string {
	parts := make([]string, 0, len(models.AllAttributes))
	for _, k := range models.AllAttributes {
		parts = append(parts, fmt.Sprintf("%s=%+d", k, a[k]))
	}
	return strings.Join(parts, " ")
}
