package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"modforge-backend/internal/models"
)

const (
	defaultModel       = "gpt-4o"
	generateTemp       = 0.7
	reviewTemp         = 0.3
	generateMaxTokens  = 3000
	reviewMaxTokens    = 1500
	contentPreviewSize = 300
)

// RemoteGenerator calls an OpenAI-compatible chat completion API.
type RemoteGenerator struct {
	client *openai.Client
	model  string
}

// NewRemoteGenerator builds a generator against the given API key. baseURL
// and model are optional overrides for OpenAI-compatible endpoints.
func NewRemoteGenerator(apiKey, baseURL, model string) *RemoteGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &RemoteGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate asks the model for code answering the prompt. The model is
// instructed to reply with a JSON object; replies that are not valid JSON are
// wrapped as raw code with guessed filename and file type.
func (g *RemoteGenerator) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: generateSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: generateTemp,
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	var out models.GenerateResponse
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &out); err == nil && out.Code != "" {
		return &out, nil
	}

	// Model ignored the JSON instruction; treat the whole reply as code.
	return &models.GenerateResponse{
		Code:        content,
		Explanation: "Generated code based on your request",
		Filename:    GuessFilename(req.Prompt, req.CurrentFile),
		FileType:    GuessFileType(req.Prompt, req.CurrentFile),
	}, nil
}

// Review asks the model for a free-text review of the given file.
func (g *RemoteGenerator) Review(ctx context.Context, req models.ReviewRequest) (string, error) {
	userPrompt := fmt.Sprintf("Please review this %s file (%s):\n\n```%s\n%s\n```\n\nProvide feedback on code quality, best practices, potential issues, and suggestions for improvement.",
		req.FileType, req.Filename, req.FileType, req.Code)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: reviewSystemPrompt(req.FileType)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: reviewTemp,
		MaxTokens:   reviewMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func generateSystemPrompt(req models.GenerateRequest) string {
	projectContext := req.ProjectContext
	if projectContext == "" {
		projectContext = "Minecraft mod project"
	}
	fileName, fileType, preview := "None", "None", ""
	if req.CurrentFile != nil {
		fileName = req.CurrentFile.Name
		fileType = req.CurrentFile.Type
		if req.CurrentFile.Content != "" {
			c := req.CurrentFile.Content
			if len(c) > contentPreviewSize {
				c = c[:contentPreviewSize]
			}
			preview = fmt.Sprintf("Current file content preview: %s...\n", c)
		}
	}

	return fmt.Sprintf(`You are an expert Minecraft mod developer specializing in Forge, Fabric, Quilt, and NeoForge modding.

Current Context: %s
Current File: %s (Type: %s)
%s
Generate working, production-ready code for Minecraft mods. Consider:
- Proper package structure and imports
- Minecraft version compatibility
- Best practices for the target mod loader
- Error handling and performance
- Proper registration and event handling

Respond ONLY with valid JSON in this exact format:
{
  "code": "Your generated code here",
  "explanation": "Brief explanation of what the code does",
  "filename": "SuggestedFileName.java",
  "fileType": "java"
}`, projectContext, fileName, fileType, preview)
}

func reviewSystemPrompt(fileType string) string {
	return fmt.Sprintf(`You are an expert code reviewer specializing in Minecraft modding and Java development.

Analyze the following %s file and provide a comprehensive review covering:
1. Code quality and best practices
2. Minecraft modding specific issues
3. Potential bugs or improvements
4. Performance considerations
5. Security considerations

Be constructive and specific in your feedback.`, fileType)
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON reply in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// GuessFilename picks a plausible filename from prompt keywords, falling back
// to a name derived from the current file.
func GuessFilename(prompt string, current *models.FileContext) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "block"):
		return "CustomBlock.java"
	case strings.Contains(p, "item"):
		return "CustomItem.java"
	case strings.Contains(p, "entity"):
		return "CustomEntity.java"
	case strings.Contains(p, "recipe"):
		return "custom_recipe.json"
	case strings.Contains(p, "model"):
		return "custom_model.json"
	}
	if current != nil && current.Name != "" {
		name := current.Name
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name + "Generated.java"
	}
	return "Generated.java"
}

// GuessFileType picks the output file type from prompt keywords.
func GuessFileType(prompt string, current *models.FileContext) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "recipe"), strings.Contains(p, "model"), strings.Contains(p, "json"):
		return "json"
	case strings.Contains(p, "gradle"), strings.Contains(p, "build"):
		return "gradle"
	case strings.Contains(p, "properties"):
		return "properties"
	}
	if current != nil && current.Type != "" {
		return current.Type
	}
	return "java"
}
