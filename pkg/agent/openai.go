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
	OpenAIBaseURL      = "https://api.openai.com"
	OpenAIDefaultModel = "gpt-4-turbo-preview"
)

// OpenAI asks a model from the OpenAI chat completions API for its moves.
type OpenAI struct {
	llm
}

// NewOpenAI creates an agent backed by the given OpenAI model.
func NewOpenAI(name, model, apiKey string, opts ...Option) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("new openai agent: OPENAI_API_KEY not set")
	}

	if model == "" {
		model = OpenAIDefaultModel
	}

	return &OpenAI{llm: newLLM(name, model, apiKey, OpenAIBaseURL, opts)}, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (agent *OpenAI) ChooseMove(ctx context.Context, view View, legal []game.Move) (game.Move, error) {
	return agent.choose(ctx, view, legal, agent.complete)
}

func (agent *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	request := openAIRequest{
		Model: agent.model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxReplyTokens,
	}

	var response openAIResponse
	if err := agent.post(ctx, "/v1/chat/completions", map[string]string{
		"Authorization": "Bearer " + agent.apiKey,
	}, request, &response); err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}

	return response.Choices[0].Message.Content, nil
}
