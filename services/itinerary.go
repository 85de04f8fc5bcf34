package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

// CompletionProvider turns a prompt into the model's raw text answer.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenRouterClient calls the OpenRouter chat completions endpoint.
type OpenRouterClient struct {
	URL        string
	APIKey     string
	Model      string
	Referer    string
	Title      string
	HTTPClient *http.Client
}

func NewOpenRouterClient(cfg *helpers.Config) *OpenRouterClient {
	return &OpenRouterClient{
		URL:        cfg.OpenRouterURL,
		APIKey:     cfg.OpenRouterKey,
		Model:      cfg.OpenRouterModel,
		Referer:    "http://localhost:" + cfg.Port,
		Title:      "SmartTrip Planner",
		HTTPClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY is missing", models.ErrNotConfigured)
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.Referer)
	req.Header.Set("X-Title", c.Title)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: OpenRouter Error: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: OpenRouter Error: %v", models.ErrUpstream, err)
	}

	var decoded chatResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return "", fmt.Errorf("%w: OpenRouter Error: %s", models.ErrUpstream, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: OpenRouter Error: %v", models.ErrUpstream, decodeErr)
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", fmt.Errorf("%w: OpenRouter Error: %s", models.ErrUpstream, decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: OpenRouter Error: no response content", models.ErrUpstream)
	}
	return decoded.Choices[0].Message.Content, nil
}

type generationState string

const (
	stateRequested        generationState = "requested"
	statePrompted         generationState = "prompted"
	stateAwaitingProvider generationState = "awaiting_provider"
	stateParsed           generationState = "parsed"
	stateProviderError    generationState = "provider_error"
	stateParseError       generationState = "parse_error"
)

// ItineraryService is a stateless gateway to the LLM. It never retries.
type ItineraryService struct {
	provider CompletionProvider
	logger   *slog.Logger
}

func NewItineraryService(provider CompletionProvider, logger *slog.Logger) *ItineraryService {
	return &ItineraryService{provider: provider, logger: logger.With("component", "itinerary")}
}

// Proxy forwards a ready-made prompt and returns the raw answer.
func (s *ItineraryService) Proxy(ctx context.Context, prompt string) (string, error) {
	s.logger.InfoContext(ctx, "generating trip", "prompt_length", len(prompt))
	text, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "provider call failed", "error", err)
		return "", err
	}
	return text, nil
}

// Generate builds the prompt for req, asks the provider and parses the plan.
func (s *ItineraryService) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	log := s.logger.With("from", req.From, "to", req.To, "mode", req.Mode)
	log.InfoContext(ctx, "generation state", "state", stateRequested)

	prompt := BuildPrompt(req)
	log.DebugContext(ctx, "generation state", "state", statePrompted, "prompt_length", len(prompt))

	log.InfoContext(ctx, "generation state", "state", stateAwaitingProvider)
	text, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		log.ErrorContext(ctx, "generation state", "state", stateProviderError, "error", err)
		return nil, err
	}

	plan, err := ParsePlan(text)
	if err != nil {
		log.WarnContext(ctx, "generation state", "state", stateParseError, "error", err)
		return nil, err
	}

	plan.TotalCost = helpers.SumExpenses(plan.Expenses)
	plan.TotalDays = helpers.CountDays(req.StartDate, req.EndDate)
	if plan.TotalDays == 0 {
		plan.TotalDays = len(plan.Itinerary)
	}
	log.InfoContext(ctx, "generation state", "state", stateParsed, "days", len(plan.Itinerary))
	return &models.GenerateResponse{Text: text, Plan: plan}, nil
}

var codeFence = regexp.MustCompile("```(?:json)?\\n?|\\n?```")

// StripCodeFences removes markdown code fences the model tends to wrap JSON in.
func StripCodeFences(text string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
}

// ParsePlan decodes the provider answer. A plan without summary, itinerary or
// expenses is rejected rather than filled with defaults.
func ParsePlan(text string) (*models.ItineraryPlan, error) {
	var plan models.ItineraryPlan
	if err := json.Unmarshal([]byte(StripCodeFences(text)), &plan); err != nil {
		return nil, fmt.Errorf("%w: failed to generate trip plan: %v", models.ErrParse, err)
	}

	var missing []string
	if strings.TrimSpace(plan.Summary) == "" {
		missing = append(missing, "summary")
	}
	if len(plan.Itinerary) == 0 {
		missing = append(missing, "itinerary")
	}
	if len(plan.Expenses) == 0 {
		missing = append(missing, "expenses")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: failed to generate trip plan: missing %s", models.ErrParse, strings.Join(missing, ", "))
	}
	return &plan, nil
}

// BuildPrompt renders the instruction sent to the model.
func BuildPrompt(req models.GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a detailed trip from %s to %s traveling by %s from %s to %s.\n\n",
		req.From, req.To, req.Mode, req.StartDate, req.EndDate)
	b.WriteString(promptBody)
	return b.String()
}

const promptBody = `IMPORTANT: Provide a response in valid JSON format.

Requirements:
1. An engaging, inspirational summary of about 150-200 words that captures the essence of the trip.
2. A detailed daily itinerary. For each day provide:
   - a title (e.g. "City A -> City B") and a brief description,
   - distance (if moving) and travel time,
   - the route through major waypoints,
   - sections that break the day down ("Morning", "Afternoon", "Evening", "Suggested Stops", "Check-in", ...),
   - a flat list of key activities,
   - 2-3 image keywords for the places visited.
3. Estimated expenses in INR (Indian Rupees) with at least 5-6 categories (Food, Travel, Stay, Activities, Misc, ...).
4. Start and end coordinates.
5. Name and address of the nearest airport, bus stand, taxi stand and railway station in the destination city.

IMPORTANT: The "itinerary" and "expenses" arrays must NEVER be empty. Populate them with realistic data.

Response Schema:
{
  "summary": "string",
  "itinerary": [
    {
      "day": 1,
      "title": "Day Title",
      "description": "Day description",
      "distance": "100 km",
      "travelTime": "2 hrs",
      "route": "A -> B -> C",
      "activities": ["Activity 1", "Activity 2"],
      "sections": [{ "title": "Morning", "items": ["Breakfast at X", "Visit Y"] }],
      "image_keywords": ["keyword1", "keyword2"]
    }
  ],
  "expenses": [{ "category": "string", "amount": 0 }],
  "coordinates": {
    "start": { "lat": 0, "lng": 0 },
    "end": { "lat": 0, "lng": 0 }
  },
  "transportHubs": {
    "airport": { "name": "string", "address": "string" },
    "busStand": { "name": "string", "address": "string" },
    "taxiStand": { "name": "string", "address": "string" },
    "railwayStation": { "name": "string", "address": "string" }
  }
}
`
