// Package transliteration renders customer and branch names in Devanagari
// through a hosted language model. Every operation is best-effort: failures
// fall back to the original text and are only logged.
package transliteration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Raymond9734/loan-callback-service/internal/cache"
	"github.com/Raymond9734/loan-callback-service/internal/models"
)

// Service transliterates names for an outbound call
type Service interface {
	BatchTransliterate(ctx context.Context, texts []string) map[string]string
	TranslateText(ctx context.Context, text string) string
	TranslateCustomerName(ctx context.Context, name string) models.TransliterationResult
	TranslateWinbackData(ctx context.Context, name, branchName string) models.WinbackTransliterationResult
	Enabled() bool
}

// modelNamer is implemented by generators bound to a named model
type modelNamer interface {
	ModelName() string
}

// Client is the Service backed by a Generator and an optional memo store
type Client struct {
	generator Generator
	store     cache.Store
	cacheTTL  time.Duration
	keyPrefix string
	logger    *slog.Logger
}

// NewClient creates a transliteration client.
// A nil generator means no API key is configured and every text maps to itself.
// A nil store disables memoization.
func NewClient(generator Generator, store cache.Store, cacheTTL time.Duration, logger *slog.Logger) *Client {
	if generator == nil {
		logger.Warn("transliteration client initialized without API key, translations will be skipped")
	}

	var model string
	if n, ok := generator.(modelNamer); ok {
		model = n.ModelName()
	}

	return &Client{
		generator: generator,
		store:     store,
		cacheTTL:  cacheTTL,
		keyPrefix: cacheKeyPrefix(model),
		logger:    logger,
	}
}

// Enabled reports whether a model is configured
func (c *Client) Enabled() bool {
	return c.generator != nil
}

// BatchTransliterate maps each text to its Hindi transliteration using a
// single model call. It never fails: any text without a usable result maps
// to itself.
func (c *Client) BatchTransliterate(ctx context.Context, texts []string) map[string]string {
	results := make(map[string]string, len(texts))
	if len(texts) == 0 {
		return results
	}

	if c.generator == nil {
		c.logger.Warn("no Gemini API key, using original texts", slog.Int("texts", len(texts)))
		return identity(results, texts)
	}

	pending := make([]string, 0, len(texts))
	for _, text := range texts {
		if hit, ok := c.lookup(ctx, text); ok {
			results[text] = hit
			continue
		}
		pending = append(pending, text)
	}

	if len(pending) == 0 {
		c.logger.Debug("transliteration served from cache", slog.Int("texts", len(texts)))
		return results
	}

	response, err := c.generator.Generate(ctx, buildPrompt(pending))
	if err != nil {
		c.logger.Error("batch transliteration failed, using original texts",
			slog.Int("texts", len(pending)),
			slog.String("error", err.Error()),
		)
		return identity(results, pending)
	}

	lines := parseLines(response)
	if len(lines) < len(pending) {
		c.logger.Warn("model returned fewer lines than inputs",
			slog.Int("expected", len(pending)),
			slog.Int("received", len(lines)),
		)
	}

	for i, original := range pending {
		if i >= len(lines) {
			results[original] = original
			continue
		}

		transliterated := lines[i]
		if strings.EqualFold(transliterated, original) {
			c.logger.Warn("model may have failed to transliterate", slog.String("text", original))
			results[original] = transliterated
			continue
		}

		results[original] = transliterated
		c.remember(ctx, original, transliterated)
	}

	c.logger.Info("batch transliteration complete", slog.Int("texts", len(pending)))
	return results
}

// TranslateText transliterates a single piece of text, such as a branch name
func (c *Client) TranslateText(ctx context.Context, text string) (out string) {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("error translating text", slog.String("panic", fmt.Sprint(r)))
			out = text
		}
	}()

	if v, ok := c.BatchTransliterate(ctx, []string{text})[text]; ok && v != "" {
		return v
	}
	return text
}

// TranslateCustomerName transliterates the full name and the first name in
// one batch
func (c *Client) TranslateCustomerName(ctx context.Context, name string) (result models.TransliterationResult) {
	start := time.Now()
	parsed := models.ParseFullName(name)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("error in name translation", slog.String("panic", fmt.Sprint(r)))
			result = models.TransliterationResult{
				CustomerNameHindi: name,
				AddressNameHindi:  parsed.AddressName(),
				ProcessingTimeMs:  time.Since(start).Milliseconds(),
			}
		}
	}()

	texts := make([]string, 0, 2)
	if name != "" {
		texts = append(texts, name)
	}
	if parsed.FirstName != "" {
		texts = append(texts, parsed.FirstName)
	}

	batch := c.BatchTransliterate(ctx, texts)

	result = models.TransliterationResult{
		CustomerNameHindi: valueOr(batch, name, name),
		AddressNameHindi:  valueOr(batch, parsed.FirstName, parsed.FirstName),
		ProcessingTimeMs:  time.Since(start).Milliseconds(),
	}

	c.logger.Info("name translation complete",
		slog.String("customer_name", name+" → "+result.CustomerNameHindi),
		slog.String("address_name", parsed.FirstName+" → "+result.AddressNameHindi),
		slog.Int64("processing_time_ms", result.ProcessingTimeMs),
	)

	return result
}

// TranslateWinbackData transliterates the full name, first name and previous
// branch in one batch
func (c *Client) TranslateWinbackData(ctx context.Context, name, branchName string) (result models.WinbackTransliterationResult) {
	start := time.Now()
	parsed := models.ParseFullName(name)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("error in winback translation", slog.String("panic", fmt.Sprint(r)))
			result = models.WinbackTransliterationResult{
				CustomerNameHindi: name,
				AddressNameHindi:  parsed.AddressName(),
				BranchNameHindi:   branchName,
				ProcessingTimeMs:  time.Since(start).Milliseconds(),
			}
		}
	}()

	texts := make([]string, 0, 3)
	if name != "" {
		texts = append(texts, name)
	}
	if parsed.FirstName != "" {
		texts = append(texts, parsed.FirstName)
	}
	if branchName != "" {
		texts = append(texts, branchName)
	}

	batch := c.BatchTransliterate(ctx, texts)

	result = models.WinbackTransliterationResult{
		CustomerNameHindi: valueOr(batch, name, name),
		AddressNameHindi:  valueOr(batch, parsed.FirstName, parsed.FirstName),
		BranchNameHindi:   valueOr(batch, branchName, branchName),
		ProcessingTimeMs:  time.Since(start).Milliseconds(),
	}

	c.logger.Info("winback translation complete",
		slog.String("customer_name", name+" → "+result.CustomerNameHindi),
		slog.String("address_name", parsed.FirstName+" → "+result.AddressNameHindi),
		slog.String("branch_name", branchName+" → "+result.BranchNameHindi),
		slog.Int64("processing_time_ms", result.ProcessingTimeMs),
	)

	return result
}

func (c *Client) lookup(ctx context.Context, text string) (string, bool) {
	if c.store == nil {
		return "", false
	}
	v, ok, err := c.store.Get(ctx, cacheKey(c.keyPrefix, text))
	if err != nil {
		c.logger.Warn("transliteration cache read failed", slog.String("error", err.Error()))
		return "", false
	}
	return v, ok
}

func (c *Client) remember(ctx context.Context, text, transliterated string) {
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, cacheKey(c.keyPrefix, text), transliterated, c.cacheTTL); err != nil {
		c.logger.Warn("transliteration cache write failed", slog.String("error", err.Error()))
	}
}

func identity(results map[string]string, texts []string) map[string]string {
	for _, text := range texts {
		results[text] = text
	}
	return results
}

func valueOr(batch map[string]string, key, fallback string) string {
	if v, ok := batch[key]; ok && v != "" {
		return v
	}
	return fallback
}
