// Package advisor is the move-suggestion gateway: given a position it obtains
// one legal candidate move from a configured text-generation provider. The
// provider's free-form reply goes through a two-stage validation pipeline,
// strict notation parse first, then a fuzzy containment match against the
// legal-move list.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"chesslive/internal/server/config"
	"chesslive/internal/server/engine"
)

var (
	// ErrNoLegalMoves means the position is terminal; no provider is contacted.
	ErrNoLegalMoves = errors.New("no legal moves available")
	// ErrMissingCredential means the configured provider has no API key. Not
	// retried.
	ErrMissingCredential = errors.New("provider API key not configured")
)

// completer abstracts one text-completion request so tests can run without a
// provider.
type completer interface {
	complete(ctx context.Context, model, system, user string) (string, error)
}

// Advisor requests moves from one configured provider, walking an ordered
// list of model variants and retrying the full request-and-parse cycle.
type Advisor struct {
	provider   string
	models     []string
	comp       completer
	hasKey     bool
	maxRetries int
	retryDelay time.Duration
	log        *zap.Logger
}

// New builds an advisor for the provider selected in cfg. A missing
// credential is not an error here; it surfaces as ErrMissingCredential on the
// first SuggestMove call. An unknown provider name is a configuration error.
func New(cfg *config.Config, log *zap.Logger) (*Advisor, error) {
	var key, baseURL string
	var models []string

	switch cfg.AIProvider {
	case config.ProviderGroq:
		key = cfg.GroqAPIKey
		baseURL = groqBaseURL
		if cfg.GroqModel != "" {
			models = append(models, cfg.GroqModel)
		}
		models = append(models, groqModels...)
	case config.ProviderOpenAI:
		key = cfg.OpenAIAPIKey
		models = []string{openAIModel}
	case config.ProviderGoogle:
		key = cfg.GoogleAIAPIKey
		baseURL = googleBaseURL
		models = []string{googleModel}
	default:
		return nil, fmt.Errorf("unknown AI provider %q: use %q, %q or %q",
			cfg.AIProvider, config.ProviderGroq, config.ProviderOpenAI, config.ProviderGoogle)
	}

	maxRetries := cfg.AIMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Advisor{
		provider:   cfg.AIProvider,
		models:     models,
		comp:       newOpenAICompleter(key, baseURL, cfg.AITimeout()),
		hasKey:     key != "",
		maxRetries: maxRetries,
		retryDelay: cfg.AIRetryDelay(),
		log:        log,
	}, nil
}

// SuggestMove obtains one validated candidate move for the given position.
// Each attempt is independent; the position is never mutated.
func (a *Advisor) SuggestMove(ctx context.Context, g *engine.Game) (*engine.CandidateMove, error) {
	legal := g.LegalMoves()
	if len(legal) == 0 {
		return nil, ErrNoLegalMoves
	}
	if !a.hasKey {
		return nil, fmt.Errorf("%w: provider %s", ErrMissingCredential, a.provider)
	}

	system := "You are an expert chess engine. Always respond with only the move in SAN notation."
	user := buildPrompt(g, legal)

	var lastErr error
	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(a.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		a.log.Info("requesting move suggestion",
			zap.String("provider", a.provider),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", a.maxRetries))

		text, err := a.tryModels(ctx, system, user)
		if err != nil {
			lastErr = err
			a.log.Warn("suggestion request failed",
				zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		cand, err := a.validateText(g, text, legal)
		if err != nil {
			lastErr = err
			a.log.Warn("suggestion text rejected",
				zap.Int("attempt", attempt),
				zap.String("text", text), zap.Error(err))
			continue
		}

		a.log.Info("move suggestion accepted",
			zap.String("text", text),
			zap.String("from", cand.From), zap.String("to", cand.To))
		return cand, nil
	}

	return nil, fmt.Errorf("no valid move after %d attempts: %w", a.maxRetries, lastErr)
}

// tryModels walks the model-variant list, moving to the next variant only
// when the current one fails outright. The last error wins when all fail.
func (a *Advisor) tryModels(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for _, model := range a.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := a.comp.complete(ctx, model, system, user)
		if err != nil {
			lastErr = err
			a.log.Warn("model variant failed", zap.String("model", model), zap.Error(err))
			continue
		}
		return text, nil
	}
	return "", lastErr
}

// validateText interprets provider text as a move: strict parse against the
// position, then a containment match against the legal SAN list.
func (a *Advisor) validateText(g *engine.Game, text string, legal []engine.LegalMove) (*engine.CandidateMove, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty suggestion text")
	}

	if cand, err := g.ParseMove(text); err == nil {
		if cand.Promotion == "" && isPromotionTarget(cand, legal) {
			cand.Promotion = "q"
		}
		return cand, nil
	}

	for i := range legal {
		lm := &legal[i]
		if strings.Contains(text, lm.SAN) || strings.Contains(lm.SAN, text) {
			cand := &engine.CandidateMove{From: lm.From, To: lm.To, Promotion: lm.Promotion}
			if cand.Promotion == "" && isPromotionTarget(cand, legal) {
				cand.Promotion = "q"
			}
			return cand, nil
		}
	}

	return nil, fmt.Errorf("unusable suggestion %q", text)
}

// isPromotionTarget reports whether from/to corresponds to a promotion, in
// which case the candidate defaults to the strongest piece.
func isPromotionTarget(c *engine.CandidateMove, legal []engine.LegalMove) bool {
	for i := range legal {
		if legal[i].From == c.From && legal[i].To == c.To && legal[i].Promotion != "" {
			return true
		}
	}
	return false
}
