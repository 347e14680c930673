package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user for a value. secret hides the input.
type Prompter func(title string, secret bool) (string, error)

// Confirmer asks a yes/no question.
type Confirmer func(title string) (bool, error)

func HuhPrompt(title string, secret bool) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errEmptyInput
			}
			return nil
		})
	if secret {
		input = input.EchoMode(huh.EchoModePassword)
	}
	if err := input.Run(); err != nil {
		return "", err
	}
	return value, nil
}

func HuhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// ask returns value, prompting for it when empty.
func (c *Context) ask(value, title string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	if c.Prompt == nil {
		return "", errEmptyInput
	}
	return c.Prompt(title, secret)
}
