package prompt

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question. An empty answer picks defaultYes.
func Confirm(label string, defaultYes bool) (bool, error) {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, defaultStr),
		IsConfirm: true,
	}

	result, err := prompt.Run()
	if err != nil {
		switch {
		case err == promptui.ErrInterrupt:
			return false, ErrAborted
		case err == promptui.ErrAbort:
			// promptui reports "n" and empty input as ErrAbort.
			if strings.TrimSpace(result) == "" {
				return defaultYes, nil
			}
			return false, nil
		default:
			return false, err
		}
	}

	answer := strings.ToLower(strings.TrimSpace(result))
	return answer == "y" || answer == "yes", nil
}

// ConfirmOverwrite skips the question when force is set.
func ConfirmOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(fmt.Sprintf("%s exists. Overwrite", path), false)
}
