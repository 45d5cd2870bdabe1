package cli

import (
	"io"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskKeepsPromptErrors(t *testing.T) {
	orig := askOne
	t.Cleanup(func() { askOne = orig })

	tests := []struct {
		name string
		err  error
	}{
		{"interrupt", terminal.InterruptErr},
		{"eof", io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			askOne = func(survey.Prompt, any, ...survey.AskOpt) error { return tt.err }

			ok, err := ask("Overwrite?")
			require.ErrorIs(t, err, tt.err)
			assert.False(t, ok)
			assert.Contains(t, err.Error(), "confirm overwrite")
		})
	}
}

func TestAskAnswer(t *testing.T) {
	orig := askOne
	t.Cleanup(func() { askOne = orig })

	askOne = func(p survey.Prompt, response any, _ ...survey.AskOpt) error {
		c, ok := p.(*survey.Confirm)
		require.True(t, ok)
		assert.Equal(t, "Overwrite?", c.Message)

		*response.(*bool) = true

		return nil
	}

	ok, err := ask("Overwrite?")
	require.NoError(t, err)
	assert.True(t, ok)
}
