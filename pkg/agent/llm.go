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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"laptudirm.com/x/breakthrough/pkg/game"
)

const (
	systemPrompt = "You are a strategic Breakthrough player. Respond with only the move notation."

	maxReplyTokens = 50
	temperature    = 0.7

	// Used when the context has no deadline of its own.
	defaultRequestTimeout = 60 * time.Second
)

var promptTemplate = heredoc.Doc(`
	You are playing Breakthrough, a strategy board game on an 8x8 board.

	Current board state:
	%s

	You are playing as %s. Your pieces move forward or diagonally forward to capture.
	Reach the opponent's back row to win.

	Available legal moves: %s

	Please respond with ONLY the move in the format "column_row to column_row" (e.g., "e2 to e3").
	Choose the best move strategically.`)

// Prompt builds the message asking a language model for its move.
func Prompt(view View, legal []game.Move) string {
	return fmt.Sprintf(
		promptTemplate,
		view.Board.String(),
		view.Side,
		strings.Join(Notations(legal), ", "),
	)
}

// ParseReply extracts a legal move out of a model's reply. Replies which
// don't contain a legal move in notation form fall back to the first legal
// move; ok reports whether the reply itself was usable.
func ParseReply(reply string, legal []game.Move) (move game.Move, ok bool) {
	reply = strings.ToLower(strings.TrimSpace(reply))

	if strings.Contains(reply, game.Delimiter) {
		if parsed, err := game.ParseMove(reply); err == nil {
			if move, found := Find(legal, parsed.String()); found {
				return move, true
			}
		}
	}

	return legal[0], false
}

// llm contains the parts shared by every language model backed agent.
type llm struct {
	name  string
	model string

	apiKey  string
	baseURL string
	client  *fasthttp.Client
}

// Option configures a language model backed agent.
type Option func(*llm)

// WithBaseURL overrides the API endpoint of the provider.
func WithBaseURL(url string) Option {
	return func(agent *llm) { agent.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient makes the agent send its requests through the given client.
func WithHTTPClient(client *fasthttp.Client) Option {
	return func(agent *llm) { agent.client = client }
}

func newLLM(name, model, apiKey, baseURL string, opts []Option) llm {
	agent := llm{
		name:    name,
		model:   model,
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &fasthttp.Client{
			ReadTimeout:  defaultRequestTimeout,
			WriteTimeout: defaultRequestTimeout,
		},
	}

	for _, opt := range opts {
		opt(&agent)
	}

	return agent
}

func (agent *llm) Name() string { return agent.name }

// choose asks complete for a reply to the move prompt and turns it into a
// move. Failures to reach the model are errors, unusable replies are not.
func (agent *llm) choose(
	ctx context.Context, view View, legal []game.Move,
	complete func(ctx context.Context, prompt string) (string, error),
) (game.Move, error) {
	if len(legal) == 0 {
		return game.Move{}, &Error{Agent: agent.name, Err: ErrNoMoves}
	}

	prompt := Prompt(view, legal)
	logrus.Tracef("(%s)< %s", agent.name, prompt)

	reply, err := complete(ctx, prompt)
	if err != nil {
		return game.Move{}, &Error{Agent: agent.name, Err: err}
	}

	logrus.Debugf("(%s)> %s", agent.name, reply)

	move, ok := ParseReply(reply, legal)
	if !ok {
		logrus.Warnf("%s: could not parse move %q, using first legal move", agent.name, reply)
	}

	return move, nil
}

// post sends in as a JSON body to the given path and decodes the response
// into out. The request is bounded by the context's deadline.
func (agent *llm) post(ctx context.Context, path string, headers map[string]string, in, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(agent.baseURL + path)
	req.Header.SetContentType("application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return errors.WithMessage(err, "marshal request")
	}
	req.SetBody(payload)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultRequestTimeout)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := agent.client.DoDeadline(req, resp, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.WithMessage(ctxErr, agent.model)
		}
		if errors.Is(err, fasthttp.ErrTimeout) {
			return errors.WithMessage(context.DeadlineExceeded, agent.model)
		}
		return errors.WithMessage(err, "request failed")
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return errors.Errorf("api error: status=%d body=%s", status, truncate(string(resp.Body()), 512))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.WithMessage(err, "decode response")
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
