// Package narrator asks Gemini for a personalized reflection once a player
// reaches an ending.
package narrator

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/napele/internal/engine"
	"github.com/tatianab/napele/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/reflection.txt
var reflectionPrompt string

var reflectionTmpl = template.Must(template.New("reflection").Parse(reflectionPrompt))

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Narrator struct {
	client *genai.Client
	model  contentGenerator
}

func NewNarrator(ctx context.Context, apiKey string) (*Narrator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	return &Narrator{
		client: client,
		model:  model,
	}, nil
}

func (n *Narrator) Close() {
	if n.client != nil {
		n.client.Close()
	}
}

type attributeLine struct {
	Name  string
	Value int
}

func renderPrompt(storyTitle string, out engine.Outcome, profile engine.Profile) (string, error) {
	data := struct {
		StoryTitle         string
		OutcomeTitle       string
		OutcomeText        string
		Attributes         []attributeLine
		ProfileName        string
		ProfileDescription string
	}{
		StoryTitle:         storyTitle,
		OutcomeTitle:       out.Title,
		OutcomeText:        out.Text,
		ProfileName:        profile.Name,
		ProfileDescription: profile.Description,
	}
	for _, a := range models.AllAttributes {
		data.Attributes = append(data.Attributes, attributeLine{Name: string(a), Value: out.Attributes[a]})
	}

	var buf bytes.Buffer
	if err := reflectionTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Reflect returns a short reflection on the player's ending and profile.
func (n *Narrator) Reflect(ctx context.Context, storyTitle string, out engine.Outcome, profile engine.Profile) (string, error) {
	prompt, err := renderPrompt(storyTitle, out, profile)
	if err != nil {
		return "", err
	}

	resp, err := n.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}

	reflection := strings.TrimSpace(string(text))
	if reflection == "" {
		return "", fmt.Errorf("empty reflection returned from Gemini")
	}
	return reflection, nil
}
