package slidegen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"embedded message", `prefix {"error":{"message":"bad key"}} suffix`, "bad key"},
		{"plain text", "plain text", "plain text"},
		{"non-string", 42, GenericErrorText},
		{"nil", nil, GenericErrorText},
		{"missing message", `got {"error":{"code":400}}`, MissingMessageText},
		{"empty message", `{"error":{"message":""}}`, MissingMessageText},
		{"unparseable object", `oops {"error": {"message": "x"`, `oops {"error": {"message": "x"`},
		{
			name: "service error",
			in:   errors.New(`got status 400: {"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`),
			want: "API key not valid",
		},
		{
			name: "wrapped error",
			in:   fmt.Errorf("gemini stream: %w", errors.New("connection reset")),
			want: "gemini stream: connection reset",
		},
		{
			name: "object on first line only",
			in:   "{\"error\":{\"message\":\"quota\"}}\ntrailing }",
			want: "quota",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.in))
		})
	}
}
