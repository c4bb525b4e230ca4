package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/internal/utils"
)

type (
	// Client is the inference collaborator used for receipt extraction and
	// advice text. It is constructed once at startup and injected into the
	// services that need it, so tests can substitute a fake.
	Client interface {
		ExtractReceipt(ctx context.Context, imageURL string) (domain.ExtractedReceipt, error)
		GenerateText(ctx context.Context, prompt string) (string, error)
	}

	geminiClient struct {
		httpClient *http.Client
	}
)

// maxImageBytes caps how much of a receipt image is read before it is
// base64-inlined into the extraction request.
const maxImageBytes = 10 << 20

func NewGeminiClient() Client {
	return &geminiClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func geminiEndpoint() (string, error) {
	apiKey := utils.GetConfig("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := utils.GetConfig("GEMINI_MODEL")
	if model == "" {
		return "", fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	return fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, apiKey), nil
}

func (g *geminiClient) ExtractReceipt(ctx context.Context, imageURL string) (domain.ExtractedReceipt, error) {
	imageData, mimeType, err := g.fetchImage(ctx, imageURL)
	if err != nil {
		return domain.ExtractedReceipt{}, err
	}

	prompt := fmt.Sprintf(
		"You are a receipt scanner. Analyze this receipt image and respond ONLY with a valid JSON object containing exactly these fields: "+
			"'merchantName' (string), 'date' (string in YYYY-MM-DD format), 'totalAmount' (number, the total in cents), and "+
			"'items' (array of objects with 'name' (string), 'price' (number in cents) and 'category' (string)). "+
			"Each item category MUST be one of: %s. If an item fits none of them, use %q. "+
			"Do not include any explanations, markdown formatting, or extra text.",
		strings.Join(domain.ItemCategories, ", "), domain.CategoryOther,
	)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(imageData),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	responseText, err := g.generate(ctx, requestBody)
	if err != nil {
		return domain.ExtractedReceipt{}, err
	}

	return ParseExtractionText(responseText)
}

func (g *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
				},
			},
		},
	}

	return g.generate(ctx, requestBody)
}

func (g *geminiClient) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch receipt image: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("receipt image exceeds %d bytes", maxImageBytes)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return data, mimeType, nil
}

func (g *geminiClient) generate(ctx context.Context, requestBody map[string]interface{}) (string, error) {
	endpoint, err := geminiEndpoint()
	if err != nil {
		return "", err
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrEmptyExtraction
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

// CleanModelJSON strips markdown fences and surrounding prose from a model
// response so the embedded JSON object can be unmarshalled.
func CleanModelJSON(text string) string {
	if matches := jsonPattern.FindString(text); matches != "" {
		text = matches
	}

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// ParseExtractionText turns a raw model response into an ExtractedReceipt.
func ParseExtractionText(text string) (domain.ExtractedReceipt, error) {
	cleaned := CleanModelJSON(text)
	if cleaned == "" {
		return domain.ExtractedReceipt{}, domain.ErrEmptyExtraction
	}

	var extracted domain.ExtractedReceipt
	if err := json.Unmarshal([]byte(cleaned), &extracted); err != nil {
		return domain.ExtractedReceipt{}, fmt.Errorf("failed to parse extraction response: %v - Raw response: %s", err, text)
	}

	return extracted, nil
}
