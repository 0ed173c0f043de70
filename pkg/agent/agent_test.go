package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"laptudirm.com/x/breakthrough/pkg/game"
)

func TestRandomPlaysLegalMoves(t *testing.T) {
	agent := NewRandom("TestBot", 42)
	g := game.NewGame()

	for i := 0; i < 20 && !g.Over(); i++ {
		legal := g.LegalMoves()
		move, err := agent.ChooseMove(context.Background(), NewView(g), legal)
		require.NoError(t, err)
		require.Contains(t, legal, move)
		require.True(t, g.Apply(move))
	}

	require.Equal(t, "TestBot", agent.Name())
}

func TestRandomIsReproducible(t *testing.T) {
	legal := game.NewGame().LegalMoves()

	a, b := NewRandom("a", 7), NewRandom("b", 7)
	for i := 0; i < 10; i++ {
		moveA, err := a.ChooseMove(context.Background(), View{}, legal)
		require.NoError(t, err)
		moveB, err := b.ChooseMove(context.Background(), View{}, legal)
		require.NoError(t, err)
		require.Equal(t, moveA, moveB)
	}
}

func TestRandomWithoutMoves(t *testing.T) {
	_, err := NewRandom("TestBot", 1).ChooseMove(context.Background(), View{}, nil)

	var agentErr *Error
	require.ErrorAs(t, err, &agentErr)
	require.Equal(t, "TestBot", agentErr.Agent)
	require.ErrorIs(t, err, ErrNoMoves)
}

func TestParseReply(t *testing.T) {
	legal := game.NewGame().LegalMoves()

	move, ok := ParseReply("  E2 to E3\n", legal)
	require.True(t, ok)
	require.Equal(t, "e2 to e3", move.String())

	move, ok = ParseReply("e2 to e5", legal)
	require.False(t, ok, "illegal moves should be rejected")
	require.Equal(t, legal[0], move)

	move, ok = ParseReply("I think the best move is e2", legal)
	require.False(t, ok)
	require.Equal(t, legal[0], move)
}

func TestPrompt(t *testing.T) {
	g := game.NewGame()
	prompt := Prompt(NewView(g), g.LegalMoves())

	require.Contains(t, prompt, "You are playing as FIRST.")
	require.Contains(t, prompt, "a2 to a3, b2 to b3")
	require.Contains(t, prompt, "8|B|B|B|B|B|B|B|B|8")
	require.False(t, strings.HasPrefix(prompt, "\t"))
}

// serve starts an in-memory HTTP server and returns a client connected to it.
func serve(t *testing.T, handler fasthttp.RequestHandler) *fasthttp.Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: handler}
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	return &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
	}
}

func TestOpenAI(t *testing.T) {
	var request openAIRequest
	client := serve(t, func(ctx *fasthttp.RequestCtx) {
		require.Equal(t, "/v1/chat/completions", string(ctx.Path()))
		require.Equal(t, "Bearer sk-test", string(ctx.Request.Header.Peek("Authorization")))
		require.NoError(t, json.Unmarshal(ctx.PostBody(), &request))

		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"choices":[{"message":{"role":"assistant","content":"d2 to d3"}}]}`)
	})

	agent, err := NewOpenAI("gpt", "", "sk-test", WithBaseURL("http://llm/"), WithHTTPClient(client))
	require.NoError(t, err)

	g := game.NewGame()
	move, err := agent.ChooseMove(context.Background(), NewView(g), g.LegalMoves())
	require.NoError(t, err)
	require.Equal(t, "d2 to d3", move.String())

	require.Equal(t, OpenAIDefaultModel, request.Model)
	require.Len(t, request.Messages, 2)
	require.Equal(t, "system", request.Messages[0].Role)
	require.Equal(t, maxReplyTokens, request.MaxTokens)
}

func TestAnthropic(t *testing.T) {
	client := serve(t, func(ctx *fasthttp.RequestCtx) {
		require.Equal(t, "/v1/messages", string(ctx.Path()))
		require.Equal(t, "key", string(ctx.Request.Header.Peek("x-api-key")))
		require.Equal(t, anthropicVersion, string(ctx.Request.Header.Peek("anthropic-version")))

		ctx.SetBodyString(`{"content":[{"type":"text","text":"no idea"}]}`)
	})

	agent, err := NewAnthropic("claude", "some-model", "key", WithBaseURL("http://llm"), WithHTTPClient(client))
	require.NoError(t, err)

	g := game.NewGame()
	move, err := agent.ChooseMove(context.Background(), NewView(g), g.LegalMoves())
	require.NoError(t, err, "unusable replies fall back to a legal move")
	require.Equal(t, g.LegalMoves()[0], move)
}

func TestLLMAPIError(t *testing.T) {
	client := serve(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		ctx.SetBodyString("overloaded")
	})

	agent, err := NewOpenAI("gpt", "", "sk-test", WithBaseURL("http://llm"), WithHTTPClient(client))
	require.NoError(t, err)

	g := game.NewGame()
	_, err = agent.ChooseMove(context.Background(), NewView(g), g.LegalMoves())

	var agentErr *Error
	require.ErrorAs(t, err, &agentErr)
	require.Contains(t, err.Error(), "status=503")
}

func TestLLMTimeout(t *testing.T) {
	client := serve(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(500 * time.Millisecond)
		ctx.SetBodyString(`{"choices":[]}`)
	})

	agent, err := NewOpenAI("gpt", "", "sk-test", WithBaseURL("http://llm"), WithHTTPClient(client))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	g := game.NewGame()
	_, err = agent.ChooseMove(ctx, NewView(g), g.LegalMoves())
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNew(t *testing.T) {
	random, err := New(Config{Type: "Random", Name: "r", Seed: 3}, Keys{})
	require.NoError(t, err)
	require.IsType(t, &Random{}, random)

	_, err = New(Config{Type: TypeOpenAI, Name: "o"}, Keys{})
	require.Error(t, err, "missing keys should be reported")

	openai, err := New(Config{Type: TypeOpenAI, Name: "o"}, Keys{OpenAI: "k"})
	require.NoError(t, err)
	require.Equal(t, "o", openai.Name())

	anthropic, err := New(Config{Type: TypeAnthropic, Name: "a"}, Keys{Anthropic: "k"})
	require.NoError(t, err)
	require.IsType(t, &Anthropic{}, anthropic)

	_, err = New(Config{Type: "minimax"}, Keys{})
	require.Error(t, err)
}

func TestDefaultName(t *testing.T) {
	require.Equal(t, "Random-Player1", DefaultName("random", 1))
	require.Equal(t, "Openai-Player2", DefaultName("OPENAI", 2))
}
