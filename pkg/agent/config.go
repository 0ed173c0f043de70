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
	"fmt"
	"strings"
	"time"
)

// Agent types understood by New.
const (
	TypeRandom    = "random"
	TypeOpenAI    = "openai"
	TypeAnthropic = "anthropic"
)

// Config describes an agent taking part in a tournament.
type Config struct {
	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	Model string `yaml:"model"`

	// Seed of a random agent. Zero picks a seed from the clock.
	Seed uint64 `yaml:"seed"`

	// BaseURL overrides the API endpoint of language model agents.
	BaseURL string `yaml:"base-url"`
}

// Keys holds the API keys of the supported providers.
type Keys struct {
	OpenAI    string
	Anthropic string
}

// DefaultName returns the name used for the n-th player of a tournament
// if none is configured, like Random-Player1.
func DefaultName(kind string, n int) string {
	kind = strings.ToLower(kind)
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}

	return fmt.Sprintf("%s-Player%d", kind, n)
}

// New creates the agent described by config.
func New(config Config, keys Keys) (Agent, error) {
	var opts []Option
	if config.BaseURL != "" {
		opts = append(opts, WithBaseURL(config.BaseURL))
	}

	switch strings.ToLower(config.Type) {
	case TypeRandom, "":
		seed := config.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return NewRandom(config.Name, seed), nil
	case TypeOpenAI:
		return NewOpenAI(config.Name, config.Model, keys.OpenAI, opts...)
	case TypeAnthropic:
		return NewAnthropic(config.Name, config.Model, keys.Anthropic, opts...)
	default:
		return nil, fmt.Errorf("new agent: unknown agent type %s", config.Type)
	}
}
