package virtual

import (
	"strings"

	"hybrid/internal/config"
)

// ThemePrefix names every generated theme custom property.
const ThemePrefix = "--hy-theme-"

const baseColors = `
:root {
  --hy-color-blue: #0000FF;
  --hy-color-black: #000000;
  --hy-color-white: #FFFFFF;
  --hy-color-red: #FF0000;
}
`

// Stylesheet renders the base color block followed by one custom property
// per theme entry, in theme order. Values are interpolated verbatim.
func Stylesheet(theme config.Theme) []byte {
	var b strings.Builder
	b.WriteString(baseColors)
	b.WriteString("\n:root {\n")
	for _, v := range theme {
		b.WriteString("  ")
		b.WriteString(ThemePrefix)
		b.WriteString(v.Name)
		b.WriteString(": ")
		b.WriteString(v.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return []byte(b.String())
}
