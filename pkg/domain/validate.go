package domain

import "unicode/utf8"

// Name length bounds, inclusive, counted in characters.
const (
	MinNameLength = 1
	MaxNameLength = 100
)

// ValidateListName checks a trimmed list name against the existing lists.
// Uniqueness is tested before length, so a duplicate empty name reports ErrDuplicateName.
func ValidateListName(name string, lists []List) error {
	for _, l := range lists {
		if l.Name == name {
			return ErrDuplicateName
		}
	}
	return validateLength(name)
}

// ValidateTodoName checks a trimmed todo name.
func ValidateTodoName(name string) error {
	return validateLength(name)
}

func validateLength(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return ErrInvalidLength
	}
	return nil
}
