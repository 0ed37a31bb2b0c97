package prompt

import (
	"github.com/manifoldco/promptui"
)

// SelectOption is one item in a selection list.
type SelectOption struct {
	Label       string
	Value       string
	Description string
}

func selectTemplates(withDetails bool) *promptui.SelectTemplates {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "* {{ .Label | green }}",
	}
	if withDetails {
		templates.Details = `
{{ "Type:" | faint }}	{{ .Description }}`
	}
	return templates
}

// Select asks the user to pick one option and returns its Value.
func Select(label string, options []SelectOption) (string, error) {
	i, err := SelectIndex(label, options)
	if err != nil {
		return "", err
	}
	return options[i].Value, nil
}

// SelectIndex asks the user to pick one option and returns its index.
// Typing filters the list by label.
func SelectIndex(label string, options []SelectOption) (int, error) {
	withDetails := len(options) > 0 && options[0].Description != ""

	prompt := promptui.Select{
		Label:     label,
		Items:     options,
		Templates: selectTemplates(withDetails),
		Size:      15,
		Searcher: func(input string, index int) bool {
			return containsFold(options[index].Label, input)
		},
	}

	i, _, err := prompt.Run()
	return i, wrapError(err)
}
