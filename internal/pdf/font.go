package pdf

// Font is a tagged variant: either a named built-in font of the canvas, or a
// custom embedded family mapping styles to font files.
type Font struct {
	builtin string
	family  *FontFamily
}

// FontFamily is a custom embedded font family. The first face becomes the
// active style when the family is selected.
type FontFamily struct {
	Name  string
	Faces []FontFace
}

// FontFace maps one style to a font file path. Style follows the canvas
// convention: "" regular, "B" bold, "I" italic, "BI" bold italic.
type FontFace struct {
	Style string
	Path  string
}

// BuiltinFont selects one of the canvas's built-in fonts by name.
func BuiltinFont(name string) Font {
	return Font{builtin: name}
}

// EmbeddedFamily selects a custom font family loaded from files.
func EmbeddedFamily(name string, faces ...FontFace) Font {
	return Font{family: &FontFamily{Name: name, Faces: faces}}
}

// IsEmbedded reports whether the font needs file registration.
func (f Font) IsEmbedded() bool {
	return f.family != nil
}

// Name returns the active family name.
func (f Font) Name() string {
	if f.family != nil {
		return f.family.Name
	}
	return f.builtin
}

// Faces returns the embedded faces, nil for built-in fonts.
func (f Font) Faces() []FontFace {
	if f.family == nil {
		return nil
	}
	return f.family.Faces
}

// HasStyle reports whether the font can render the given style. Built-in
// fonts support all standard styles.
func (f Font) HasStyle(style string) bool {
	if f.family == nil {
		return true
	}
	for _, face := range f.family.Faces {
		if face.Style == style {
			return true
		}
	}
	return false
}

// DefaultFont is the canvas's built-in Helvetica equivalent.
func DefaultFont() Font {
	return BuiltinFont("Helvetica")
}

// DefaultFontSize is the layout engine's default text size.
const DefaultFontSize = 8.0
