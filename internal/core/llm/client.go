package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"grocery-parser/internal/core/ingredient"
	"grocery-parser/internal/infrastructure/config"
	"grocery-parser/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Extractor extracts ingredients from page text. Validation errors are
// returned separately so the caller can fold them into the confidence
// score instead of failing the parse.
type Extractor interface {
	ExtractIngredients(ctx context.Context, pageText string) ([]common.Ingredient, []error, error)
}

// RelayClient talks to the LLM relay service.
type RelayClient struct {
	config config.LLMConfig
	client *resty.Client
}

// NewRelayClient builds a relay client from the LLM configuration.
func NewRelayClient(cfg config.LLMConfig) *RelayClient {
	client := resty.New().
		SetBaseURL(cfg.RelayURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json")

	return &RelayClient{
		config: cfg,
		client: client,
	}
}

const promptTemplate = `Extract every ingredient from the recipe text below.
Respond with ONLY a JSON object of this exact shape, no prose:
{"ingredients":[{"name":"...","amount":1.5,"unit":"cups","category":"Produce"}]}
Categories must be one of: Produce, Meat & Seafood, Deli, Bakery, Frozen, Pantry, Dairy, Beverages.
Amounts are numbers; use 0 with unit "To taste" for unmeasured seasonings.

Recipe text:
%s`

// relayResponse is the relay envelope.
type relayResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// ExtractIngredients sends one extraction request to the relay. The
// relay is tried exactly once; the caller decides what a failure costs.
func (c *RelayClient) ExtractIngredients(ctx context.Context, pageText string) ([]common.Ingredient, []error, error) {
	prompt := c.buildPrompt(pageText)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"prompt": prompt}).
		Post("/extract")
	common.LogLLMCall(c.config.RelayURL, time.Since(start), err)

	if err != nil {
		return nil, nil, common.ErrLLMAPIError.WithErr(fmt.Errorf("llm relay request: %w", err))
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, nil, common.ErrLLMAPIError.WithErr(fmt.Errorf("llm relay status %d: %s", resp.StatusCode(), resp.String()))
	}

	var envelope relayResponse
	if err := common.ParseJSONBytes(resp.Body(), &envelope); err != nil {
		return nil, nil, common.ErrLLMParsingError.WithErr(fmt.Errorf("llm relay envelope: %w", err))
	}
	if !envelope.Success {
		return nil, nil, common.ErrLLMAPIError.WithErr(fmt.Errorf("llm relay refused: %s", envelope.Error))
	}

	return ParseLLMContent(envelope.Content)
}

// buildPrompt fills the template, truncating the page text to the
// configured token budget at roughly four characters per token.
func (c *RelayClient) buildPrompt(pageText string) string {
	maxChars := c.config.MaxPromptTokens * 4
	if maxChars > 0 && len(pageText) > maxChars {
		cut := pageText[:maxChars]
		if i := strings.LastIndexByte(cut, '\n'); i > maxChars/2 {
			cut = cut[:i]
		}
		pageText = cut
	}
	return fmt.Sprintf(promptTemplate, pageText)
}

type llmIngredient struct {
	Name     string     `json:"name"`
	Amount   flexAmount `json:"amount"`
	Unit     string     `json:"unit"`
	Category string     `json:"category"`
}

type llmPayload struct {
	Ingredients []llmIngredient `json:"ingredients"`
}

// flexAmount accepts a JSON number or a numeric string such as "1 1/2".
type flexAmount float64

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*a = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*a = flexAmount(ingredient.ParseAmount(raw, 0))
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = flexAmount(f)
	return nil
}

// ParseLLMContent validates the model's JSON answer. Bad individual
// ingredients become validation errors and are repaired or skipped;
// only unparseable JSON fails the whole call.
func ParseLLMContent(content string) ([]common.Ingredient, []error, error) {
	cleaned := common.ExtractJSONObject(content)
	if cleaned == "" {
		return nil, nil, common.ErrLLMParsingError.WithErr(fmt.Errorf("no JSON object in llm content"))
	}

	var payload llmPayload
	if err := common.ParseJSON(cleaned, &payload); err != nil {
		// models sometimes emit bare keys
		if err2 := common.ParseJSON(common.QuoteJSONKeys(cleaned), &payload); err2 != nil {
			return nil, nil, common.ErrLLMParsingError.WithErr(fmt.Errorf("llm content: %w", err))
		}
	}
	if len(payload.Ingredients) == 0 {
		return nil, nil, common.ErrLLMParsingError.WithErr(fmt.Errorf("llm content has no ingredients"))
	}

	var (
		ings    []common.Ingredient
		valErrs []error
	)
	for i, raw := range payload.Ingredients {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			valErrs = append(valErrs, common.NewValidationError(fmt.Sprintf("ingredient %d has no name", i)))
			continue
		}

		amount := float64(raw.Amount)
		if amount < 0 {
			valErrs = append(valErrs, common.NewValidationError(fmt.Sprintf("ingredient %q has negative amount", name)))
			amount = 0
		}

		norm := ingredient.NormalizeName(name)
		ing := common.Ingredient{
			Name:   norm.Name,
			Amount: amount,
			Unit:   ingredient.CanonicalUnit(strings.TrimSpace(raw.Unit), amount),
		}

		cat := common.Category(strings.TrimSpace(raw.Category))
		if common.IsValidCategory(cat) {
			ing.Category = cat
		} else {
			if raw.Category != "" {
				valErrs = append(valErrs, common.NewValidationError(fmt.Sprintf("ingredient %q has unknown category %q", name, raw.Category)))
			}
			ing.Category = ingredient.Categorize(ing.Name)
		}

		ings = append(ings, ing)
	}

	if len(ings) == 0 {
		return nil, nil, common.ErrLLMParsingError.WithErr(fmt.Errorf("llm content has no usable ingredients"))
	}
	return ings, valErrs, nil
}
