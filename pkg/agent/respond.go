package agent

import (
	"context"
	"runtime"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.opentelemetry.io/otel/attribute"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/logging"
	"github.com/odvcencio/interpreter/pkg/model"
)

// maxSteps bounds model round trips per user message.
const maxSteps = 8

const (
	forceCompletionNudge = "Proceed. You CAN run code on my machine. If the entire task is done, say exactly 'The task is done.' If it's impossible, say 'The task is impossible.'"
	noOutput             = "No output"
)

var completionPhrases = []string{
	"the task is done.",
	"the task is impossible.",
	"let me know what you'd like to do next.",
}

type codeBlock struct {
	Language string
	Code     string
}

var markdownParser = goldmark.New().Parser()

// extractCodeBlocks returns the fenced blocks the computer can run, in the
// order they appear in reply.
func extractCodeBlocks(reply string) []codeBlock {
	src := []byte(reply)
	doc := markdownParser.Parse(text.NewReader(src))

	var blocks []codeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		lang := runnableLanguage(string(fenced.Language(src)))
		if lang == "" {
			return ast.WalkSkipChildren, nil
		}
		var code strings.Builder
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			code.Write(seg.Value(src))
		}
		if trimmed := strings.TrimSpace(code.String()); trimmed != "" {
			blocks = append(blocks, codeBlock{Language: lang, Code: trimmed})
		}
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// runnableLanguage maps a fence info string to a computer language, or ""
// when the block is not meant to run.
func runnableLanguage(info string) string {
	switch strings.ToLower(info) {
	case "python", "py":
		return "python"
	case "shell", "bash", "sh", "zsh":
		return "shell"
	}
	return ""
}

func finished(reply string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range completionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// respond sends input with history to the model and runs any code it asks
// for, looping until the model stops producing runnable code. Interactive
// turns render replies and may ask before running code. The returned
// history includes every message exchanged.
func (i *Interpreter) respond(ctx context.Context, history []model.Message, input string, interactive bool) ([]model.Message, string, error) {
	ctx, span := logging.StartSpan(ctx, "agent.respond",
		attribute.String("model", i.LLM.Model),
		attribute.Bool("interactive", interactive),
	)
	history, reply, err := i.runTurn(ctx, history, input, interactive)
	span.SetAttributes(attribute.Int("messages", len(history)))
	logging.EndSpan(span, err)
	return history, reply, err
}

func (i *Interpreter) runTurn(ctx context.Context, history []model.Message, input string, interactive bool) ([]model.Message, string, error) {
	history = append(history, model.Message{Role: "user", Content: input})
	client := i.NewClient(i.LLM)

	var last string
	for step := 0; step < maxSteps; step++ {
		system := i.systemPrompt()
		req := model.ChatRequest{
			Model:       i.LLM.Model,
			Messages:    append([]model.Message{{Role: "system", Content: system}}, i.fitHistory(history, system)...),
			Temperature: i.LLM.Temperature,
		}
		if i.LLM.MaxTokens != nil {
			req.MaxTokens = *i.LLM.MaxTokens
		}

		resp, err := i.complete(ctx, client, req, interactive)
		if err != nil {
			return history, last, err
		}
		last = resp.Text()
		history = append(history, model.Message{Role: "assistant", Content: last})
		i.log().Debug("model replied", "step", step, "tokens", resp.Usage.TotalTokens)

		if interactive {
			i.term().DisplayMarkdown(last)
			i.speak(ctx, last)
		}

		if i.chargeBudget(resp.Usage) {
			return history, last, oierrors.Newf(oierrors.ErrCodeBudget, "max budget of $%.2f reached", *i.LLM.MaxBudget).
				WithRemediation("raise --max_budget to keep going")
		}

		blocks := extractCodeBlocks(last)
		if len(blocks) == 0 || i.Computer == nil {
			if i.ForceTaskCompletion && !finished(last) {
				history = append(history, model.Message{Role: "user", Content: forceCompletionNudge})
				continue
			}
			return history, last, nil
		}

		ran := false
		for _, block := range blocks {
			ok, err := i.approve(ctx, block, interactive)
			if err != nil {
				return history, last, err
			}
			if !ok {
				continue
			}
			logging.AddEvent(ctx, "code.run", attribute.String("language", block.Language))
			out, err := i.Computer.Run(ctx, block.Language, block.Code, interactive)
			if err != nil && strings.TrimSpace(out) == "" {
				out = err.Error()
			}
			if strings.TrimSpace(out) == "" {
				out = noOutput
			}
			history = append(history, model.Message{Role: "user", Content: "Code output:\n```\n" + out + "\n```"})
			ran = true
		}
		if !ran {
			return history, last, nil
		}
	}
	return history, last, nil
}

// fitHistory drops the oldest messages that would overflow the context
// window once the system prompt and reply are accounted for.
func (i *Interpreter) fitHistory(history []model.Message, system string) []model.Message {
	budget := model.TokenBudget(i.LLM)
	if budget == 0 {
		return history
	}
	count := i.tokenCounter()
	fitted := model.TrimMessages(history, max(budget-count(system), 1), count)
	if dropped := len(history) - len(fitted); dropped > 0 {
		i.log().Debug("trimmed history to fit context window", "dropped", dropped, "budget", budget)
	}
	return fitted
}

func (i *Interpreter) tokenCounter() func(string) int {
	switch {
	case i.CountTokens != nil:
		return i.CountTokens
	case i.Offline:
		return model.EstimateTokens
	}
	return model.CountTokens
}

// complete runs one request, animating a spinner on interactive turns.
func (i *Interpreter) complete(ctx context.Context, client ChatClient, req model.ChatRequest, interactive bool) (*model.ChatResponse, error) {
	if !interactive || i.term().Plain() {
		return client.ChatCompletion(ctx, req)
	}
	spinner := i.term().Spinner("Thinking")
	spinner.Start()
	defer spinner.Stop()
	return client.ChatCompletion(ctx, req)
}

// approve decides whether a block may run. Auto-run skips the question;
// non-interactive callers never run unapproved code. Only cancellation of
// ctx is an error.
func (i *Interpreter) approve(ctx context.Context, block codeBlock, interactive bool) (bool, error) {
	if i.AutoRun {
		return true, nil
	}
	if !interactive {
		return false, nil
	}
	i.term().Code(block.Language, block.Code)
	return i.term().ConfirmContext(ctx, "Would you like to run this "+block.Language+" code?", false)
}

// speak reads a reply aloud with the macOS say command.
func (i *Interpreter) speak(ctx context.Context, text string) {
	if !i.SpeakMessages || i.Computer == nil || runtime.GOOS != "darwin" {
		return
	}
	quoted := "'" + strings.ReplaceAll(text, "'", `'\''`) + "'"
	if _, err := i.Computer.Run(ctx, "shell", "say "+quoted, false); err != nil {
		i.log().Debug("speak failed", "error", err)
	}
}
