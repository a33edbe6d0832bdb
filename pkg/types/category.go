package types

import "strings"

// Category groups exercises. The name is globally unique.
type Category struct {
	ID   int64  // AUTOINCREMENT primary key.
	Name string // Required, unique, non-blank.
}

// Validate checks the category fields before persistence.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrBlankField
	}
	return nil
}
