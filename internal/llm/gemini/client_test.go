package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"career-coach-backend/internal/llm"
)

type fakeModels struct {
	resp      *genai.GenerateContentResponse
	err       error
	gotModel  string
	gotConfig *genai.GenerateContentConfig
	gotText   string
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotText = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGenerateJoinsTextParts(t *testing.T) {
	fake := &fakeModels{resp: textResponse("Dear ", "Hiring Manager")}
	client := &Client{models: fake, model: DefaultModel}

	got, err := client.Generate(context.Background(), llm.Request{Prompt: "write a letter"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Dear Hiring Manager" {
		t.Fatalf("unexpected text %q", got)
	}
	if fake.gotModel != DefaultModel || fake.gotText != "write a letter" {
		t.Fatalf("unexpected request model=%q text=%q", fake.gotModel, fake.gotText)
	}
	if fake.gotConfig.ResponseMIMEType != "" {
		t.Fatalf("expected no mime type for text requests")
	}
}

func TestGenerateRequestsJSONMimeType(t *testing.T) {
	fake := &fakeModels{resp: textResponse(`{"questions":[]}`)}
	client := &Client{models: fake, model: "gemini-test"}

	if _, err := client.Generate(context.Background(), llm.Request{Prompt: "quiz", JSON: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fake.gotConfig.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json mime type, got %q", fake.gotConfig.ResponseMIMEType)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	client := &Client{models: &fakeModels{resp: &genai.GenerateContentResponse{}}, model: DefaultModel}
	_, err := client.Generate(context.Background(), llm.Request{Prompt: "x"})
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateWrapsAPIErrorStatus(t *testing.T) {
	apiErr := genai.APIError{Code: 503, Message: "overloaded", Status: "UNAVAILABLE"}
	client := &Client{models: &fakeModels{err: apiErr}, model: DefaultModel}

	_, err := client.Generate(context.Background(), llm.Request{Prompt: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := llm.StatusCode(err); got != 503 {
		t.Fatalf("expected status 503, got %d", got)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), " ", ""); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestName(t *testing.T) {
	client := &Client{model: "gemini-1.5-flash"}
	if got := client.Name(); got != "gemini/gemini-1.5-flash" {
		t.Fatalf("unexpected name %q", got)
	}
}
