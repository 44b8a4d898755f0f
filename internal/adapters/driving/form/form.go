// Package form is the input collaborator in front of the fragment service.
// It trims and validates user input and refuses to build a draft with an
// empty title or content, so the service never has to re-validate.
package form

import (
	"strings"

	"github.com/custodia-labs/fragments-cli/internal/adapters/validation"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// Input is the raw form data for a fragment. Tags are comma separated, as
// typed into a single text field.
type Input struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
	Type    string `validate:"required,fragmenttype"`
	Tags    string
}

// FromFragment fills an Input from an existing fragment, for editing.
func FromFragment(f domain.Fragment) Input {
	return Input{
		Title:   f.Title,
		Content: f.Content,
		Type:    f.Type.String(),
		Tags:    FormatTags(f.Tags),
	}
}

// Validate trims the input and checks it. Failures wrap ErrInvalidInput,
// or ErrUnsupportedType for an unknown type.
func (in Input) Validate() (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Type = strings.TrimSpace(in.Type)

	return in, validation.Struct(in)
}

// Draft validates the input and converts it to a draft for Create.
func Draft(in Input) (domain.Draft, error) {
	in, err := in.Validate()
	if err != nil {
		return domain.Draft{}, err
	}

	typ, _ := domain.ParseFragmentType(in.Type)
	return domain.Draft{
		Title:   in.Title,
		Content: in.Content,
		Type:    typ,
		Tags:    ParseTags(in.Tags),
	}, nil
}

// Apply validates the input and returns existing with its mutable fields
// fully replaced, ready for Update.
func Apply(existing domain.Fragment, in Input) (domain.Fragment, error) {
	d, err := Draft(in)
	if err != nil {
		return domain.Fragment{}, err
	}

	existing.Title = d.Title
	existing.Content = d.Content
	existing.Type = d.Type
	existing.Tags = d.Tags
	return existing, nil
}

// ParseTags splits comma separated tags. Normalisation is left to the
// fragment service; only blanks are dropped here.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FormatTags joins tags for display in a single text field.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
