// Package ai suggests personalized recipes for premium users through an
// OpenAI-compatible API.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/lumiwell/lumi/internal/models"
	"github.com/lumiwell/lumi/internal/recipes"
)

type Client struct {
	client *openai.Client
	model  string
}

func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *Client) SetModel(model string) {
	c.model = model
}

const recipeSystemPrompt = `You are Lumi's recipe assistant. Suggest one simple home-cooked dish
matching the requested meal period and craving. Keep ingredients to pantry
staples, instructions to at most six short steps, and answer in the user's
language.`

// JSON Schema for structured output
var recipeSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"title": {
			"type": "string",
			"description": "Name of the dish"
		},
		"ingredients": {
			"type": "array",
			"items": {"type": "string"},
			"description": "Ingredients with quantities"
		},
		"instructions": {
			"type": "array",
			"items": {"type": "string"},
			"description": "Preparation steps in order"
		}
	},
	"required": ["title", "ingredients", "instructions"],
	"additionalProperties": false
}`)

// SuggestRecipe asks the model for one dish for the given meal period and
// free-text craving.
func (c *Client) SuggestRecipe(ctx context.Context, period recipes.MealPeriod, craving string) (*models.Recipe, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: recipeSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Meal period: %s. I feel like eating: %s", period, craving),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "recipe",
				Schema: recipeSchema,
				Strict: true,
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	recipe := &models.Recipe{}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), recipe); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return recipe, nil
}
