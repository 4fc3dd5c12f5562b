package utils

import (
	"fmt"

	"github.com/gosimple/slug"
)

// UniqueSlug derives a slug from source and appends -1, -2, ... until exists
// reports the candidate as free. fallback is used when source has no
// sluggable characters.
func UniqueSlug(source, fallback string, exists func(candidate string) (bool, error)) (string, error) {
	base := slug.Make(source)
	if base == "" {
		base = fallback
	}

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
