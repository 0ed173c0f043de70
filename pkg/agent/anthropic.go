// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agent

import (
	"context"
	"errors"

	"laptudirm.com/x/breakthrough/pkg/game"
)

const (
	AnthropicBaseURL      = "https://api.anthropic.com"
	AnthropicDefaultModel = "claude-3-5-sonnet-20241022"
	anthropicVersion      = "2023-06-01"
)

// Anthropic asks a model from the Anthropic messages API for its moves.
type Anthropic struct {
	llm
}

// NewAnthropic creates an agent backed by the given Anthropic model.
func NewAnthropic(name, model, apiKey string, opts ...Option) (*Anthropic, error) {
	if apiKey == "" {
		return nil, errors.New("new anthropic agent: ANTHROPIC_API_KEY not set")
	}

	if model == "" {
		model = AnthropicDefaultModel
	}

	return &Anthropic{llm: newLLM(name, model, apiKey, AnthropicBaseURL, opts)}, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (agent *Anthropic) ChooseMove(ctx context.Context, view View, legal []game.Move) (game.Move, error) {
	return agent.choose(ctx, view, legal, agent.complete)
}

func (agent *Anthropic) complete(ctx context.Context, prompt string) (string, error) {
	request := anthropicRequest{
		Model:     agent.model,
		MaxTokens: maxReplyTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	var response anthropicResponse
	if err := agent.post(ctx, "/v1/messages", map[string]string{
		"x-api-key":         agent.apiKey,
		"anthropic-version": anthropicVersion,
	}, request, &response); err != nil {
		return "", err
	}

	for _, block := range response.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", errors.New("anthropic: no text in response")
}
