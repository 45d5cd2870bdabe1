package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// isTTY is replaced in tests.
var isTTY = func() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// askOne is replaced in tests.
var askOne = survey.AskOne

// ask is replaced in tests.
var ask = func(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{Message: message, Default: false}

	if err := askOne(prompt, &ok); err != nil {
		return false, fmt.Errorf("confirm overwrite: %w", err)
	}

	return ok, nil
}

// confirm asks a yes/no question. Without a terminal there is nobody to
// ask and the answer is yes.
func confirm(message string) (bool, error) {
	if !isTTY() {
		return true, nil
	}

	return ask(message)
}
