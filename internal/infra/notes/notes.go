// Package notes drafts the closing remarks of a quote with an
// OpenAI-compatible chat completions API.
package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/format"
	"orcafacil/go_backend/internal/domain/quote"
)

const (
	// Fallback is used whenever the model cannot be reached.
	Fallback = "Obrigado pela oportunidade de apresentar esta proposta. Ficamos à disposição para dúvidas."
	// EmptyAnswer is used when the model answers with no text.
	EmptyAnswer = "Obrigado pela oportunidade de apresentar esta proposta."
)

const system = "Você escreve observações de orçamentos para pequenos prestadores de serviço. " +
	"Responda apenas com o texto da observação, em português, cordial, profissional e sucinto (2 a 4 frases)."

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Suggester never fails: errors are logged and answered with Fallback.
type Suggester struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func New(cfg Config, hc *http.Client, log *zap.Logger) *Suggester {
	if hc == nil {
		hc = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Suggester{cfg: cfg, http: hc, log: log}
}

func (s *Suggester) Suggest(ctx context.Context, q quote.Quote) string {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return Fallback
	}
	text, err := s.complete(ctx, Prompt(q))
	if err != nil {
		s.log.Warn("notes: suggestion failed, using fallback", zap.String("quote", q.Number), zap.Error(err))
		return Fallback
	}
	if text == "" {
		return EmptyAnswer
	}
	return text
}

// Prompt describes the quote to the model.
func Prompt(q quote.Quote) string {
	lines := make([]string, 0, len(q.Items))
	for _, it := range q.Items {
		lines = append(lines, format.Quantity(it.Quantity)+"x "+it.Label())
	}
	customer := strings.TrimSpace(q.Customer.Name)
	if customer == "" {
		customer = "o cliente"
	}
	return fmt.Sprintf("Escreva uma breve e profissional mensagem de agradecimento e observações técnicas para um orçamento destinado a %s.\n"+
		"Os itens são: %s.\nFoque no valor entregue pelo serviço/produto.", customer, strings.Join(lines, ", "))
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_completion_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *Suggester) complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	urlStr := strings.TrimRight(s.cfg.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty openai response")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
