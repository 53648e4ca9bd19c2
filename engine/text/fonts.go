package text

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Bold is the weight threshold at which the bold face is picked.
const Bold = 600

// ResolveFont maps a family and weight onto the embedded Go fonts.
// Family names are matched case-insensitively; "" means "Go".
func ResolveFont(family string, weight int) ([]byte, error) {
	bold := weight >= Bold
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "", "go", "go regular", "sans":
		if bold {
			return gobold.TTF, nil
		}
		return goregular.TTF, nil
	case "go mono", "mono", "monospace":
		if bold {
			return gomonobold.TTF, nil
		}
		return gomono.TTF, nil
	}
	return nil, fmt.Errorf("unknown font family %q", family)
}
