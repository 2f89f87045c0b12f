package client

import (
	"testing"

	"repoview/internal/errcodes"

	"github.com/stretchr/testify/assert"
)

func TestParseIssueState(t *testing.T) {
	tests := []struct {
		in   string
		want IssueState
		err  error
	}{
		{in: "open", want: IssueStateOpen},
		{in: "closed", want: IssueStateClosed},
		{in: " All ", want: IssueStateAll},
		{in: "merged", err: errcodes.ErrUnknownIssueState},
		{in: "", err: errcodes.ErrUnknownIssueState},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIssueState(tt.in)

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("includes the message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "Not Found"}

		assert.Equal(t, "request failed with status 404: Not Found", err.Error())
	})

	t.Run("falls back to the status", func(t *testing.T) {
		err := &APIError{StatusCode: 502}

		assert.Equal(t, "request failed with status 502", err.Error())
	})
}
