package logging

import (
	"strings"
	"testing"
)

func TestRedactSignedURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "presigned amz url",
			input: "https://cdn.example.com/a.png?X-Amz-Signature=abc&X-Amz-Credential=def",
			want:  "https://cdn.example.com/a.png?" + RedactedQuery,
		},
		{
			name:  "token query",
			input: "https://storage.example.com/v/b.png?token=secret123",
			want:  "https://storage.example.com/v/b.png?" + RedactedQuery,
		},
		{
			name:  "sig shorthand",
			input: "https://blob.example.com/c.png?sig=xyz",
			want:  "https://blob.example.com/c.png?" + RedactedQuery,
		},
		{
			name:  "plain url without query",
			input: "https://cdn.example.com/a.png",
			want:  "https://cdn.example.com/a.png",
		},
		{
			name:  "url with harmless query",
			input: "https://cdn.example.com/a.png?width=1080",
			want:  "https://cdn.example.com/a.png?width=1080",
		},
		{
			name:  "non-url string",
			input: "late night ramen run",
			want:  "late night ramen run",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RedactSignedURL(tt.input)
			if got != tt.want {
				t.Errorf("RedactSignedURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.Contains(got, "secret123") || strings.Contains(got, "X-Amz-Signature=abc") {
				t.Errorf("redacted output still contains sensitive value: %q", got)
			}
		})
	}
}
