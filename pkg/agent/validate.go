package agent

import (
	"context"
	"os"
	"strings"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/model"
)

// EnvOpenAIKey is read when no API key was configured.
const EnvOpenAIKey = "OPENAI_API_KEY"

// ValidateLLMSettings makes sure the model can be reached before chatting.
// Hosted models without a key fall back to OPENAI_API_KEY, then to a prompt
// when running in the terminal.
func (i *Interpreter) ValidateLLMSettings(ctx context.Context) error {
	if i.LLM == nil {
		return oierrors.New(oierrors.ErrCodeConfigInvalid, "no language model configured")
	}
	if strings.TrimSpace(i.LLM.Model) == "" {
		return oierrors.New(oierrors.ErrCodeConfigInvalid, "no model selected").
			WithRemediation("pass --model, e.g. --model gpt-4-turbo")
	}

	if i.needsAPIKey() {
		if key := strings.TrimSpace(os.Getenv(EnvOpenAIKey)); key != "" {
			i.LLM.APIKey = key
		} else if i.InTerminalInterface {
			key, err := i.promptAPIKey(ctx)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err == nil {
				i.LLM.APIKey = key
			}
		}
		if i.LLM.APIKey == "" {
			return oierrors.New(oierrors.ErrCodeConfigInvalid, "missing API key for "+i.LLM.Model).
				WithUserMessage("No API key found for `"+i.LLM.Model+"`.").
				WithRemediation(
					"export "+EnvOpenAIKey+"=<your key>",
					"or pass --api_key <your key>",
					"or use a local model with --local",
				)
		}
	}

	if !i.AutoRun && i.InTerminalInterface {
		i.term().DisplayMarkdown("> Model set to `" + i.LLM.Model + "`")
	}
	return nil
}

func (i *Interpreter) needsAPIKey() bool {
	return strings.TrimSpace(i.LLM.APIKey) == "" &&
		strings.TrimSpace(i.LLM.APIBase) == "" &&
		!model.IsLocal(i.LLM)
}

func (i *Interpreter) promptAPIKey(ctx context.Context) (string, error) {
	out := i.term()
	out.DisplayMarkdown("Open Interpreter needs an OpenAI API key for `" + i.LLM.Model + "`. Get one at https://platform.openai.com/api-keys")
	key, err := i.readLine(ctx, "OpenAI API key: ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}
