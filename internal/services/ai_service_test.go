package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
)

func TestRequestCtx_AppliesConfiguredTimeout(t *testing.T) {
	s := &aiServiceImpl{timeout: time.Minute}

	before := time.Now()
	ctx, cancel := s.requestCtx(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("no deadline on the request context")
	}
	remaining := deadline.Sub(before)
	if remaining <= 0 || remaining > time.Minute {
		t.Fatalf("deadline %s away, want within a minute", remaining)
	}
}

func TestRequestCtx_ZeroTimeoutLeavesContextUnbounded(t *testing.T) {
	s := &aiServiceImpl{}

	ctx, cancel := s.requestCtx(context.Background())
	defer cancel()

	if _, ok := ctx.Deadline(); ok {
		t.Fatal("deadline set despite zero timeout")
	}
}

func TestResponseText(t *testing.T) {
	textResp := func(parts ...genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: parts}},
			},
		}
	}

	const fallback = "I couldn't generate a response. Please try again."
	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: fallback},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: fallback},
		{name: "no text parts", resp: textResp(), want: fallback},
		{name: "single part", resp: textResp(genai.Text("hello")), want: "hello"},
		{
			name: "multiple parts joined in order",
			resp: textResp(genai.Text("first "), genai.Text("second")),
			want: "first second",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := responseText(tc.resp); got != tc.want {
				t.Fatalf("responseText = %q, want %q", got, tc.want)
			}
		})
	}
}
