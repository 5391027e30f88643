package ui

import "github.com/charmbracelet/huh"

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(title, affirmative, negative string) (bool, error)
}

// HuhPrompter asks with a huh confirm field.
type HuhPrompter struct{}

// Confirm shows a confirm prompt. Aborting returns apperr.ErrCancelled.
func (HuhPrompter) Confirm(title, affirmative, negative string) (bool, error) {
	confirm := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&confirm).
				Affirmative(affirmative).
				Negative(negative),
		),
	)
	if err := form.Run(); err != nil {
		return false, mapAbort(err)
	}
	return confirm, nil
}
