package document

type FontFamily string

const (
	FontModernSans    FontFamily = "MODERN_SANS"
	FontBookSans      FontFamily = "BOOK_SANS"
	FontOrganicSans   FontFamily = "ORGANIC_SANS"
	FontGeometricSans FontFamily = "GEOMETRIC_SANS"
	FontHeavySans     FontFamily = "HEAVY_SANS"
	FontRoundedSans   FontFamily = "ROUNDED_SANS"
	FontModernSerif   FontFamily = "MODERN_SERIF"
	FontBookSerif     FontFamily = "BOOK_SERIF"
	FontMonospace     FontFamily = "MONOSPACE"
)

var fontStacks = map[FontFamily]string{
	FontModernSans:    `"Helvetica Neue", "Arial Nova", "Nimbus Sans", Arial, sans-serif`,
	FontBookSans:      `Optima, Candara, "Noto Sans", source-sans-pro, sans-serif`,
	FontOrganicSans:   `Seravek, "Gill Sans Nova", Ubuntu, Calibri, "DejaVu Sans", source-sans-pro, sans-serif`,
	FontGeometricSans: `Avenir, "Avenir Next LT Pro", Montserrat, Corbel, "URW Gothic", source-sans-pro, sans-serif`,
	FontHeavySans:     `Bahnschrift, "DIN Alternate", "Franklin Gothic Medium", "Nimbus Sans Narrow", sans-serif-condensed, sans-serif`,
	FontRoundedSans:   `ui-rounded, "Hiragino Maru Gothic ProN", Quicksand, Comfortaa, Manjari, "Arial Rounded MT Bold", Calibri, source-sans-pro, sans-serif`,
	FontModernSerif:   `Charter, "Bitstream Charter", "Sitka Text", Cambria, serif`,
	FontBookSerif:     `"Iowan Old Style", "Palatino Linotype", "URW Palladio L", P052, serif`,
	FontMonospace:     `"Nimbus Mono PS", "Courier New", "Cutive Mono", monospace`,
}

// Valid reports whether f is one of the known font family keys.
func (f FontFamily) Valid() bool {
	_, ok := fontStacks[f]
	return ok
}

// Stack returns the CSS font-family stack for the key.
func (f FontFamily) Stack() string {
	return fontStacks[f]
}

// Style is shared by every block type that opts into styling. Which
// fields a type accepts is decided by the schema registry.
type Style struct {
	BackgroundColor *string     `json:"backgroundColor,omitempty" validate:"omitempty,hexcolor6"`
	Color           *string     `json:"color,omitempty" validate:"omitempty,hexcolor6"`
	BorderColor     *string     `json:"borderColor,omitempty" validate:"omitempty,hexcolor6"`
	BorderRadius    *int        `json:"borderRadius,omitempty" validate:"omitempty,min=0"`
	FontFamily      *FontFamily `json:"fontFamily,omitempty" validate:"omitempty,fontfamily"`
	FontSize        *int        `json:"fontSize,omitempty" validate:"omitempty,min=0"`
	FontWeight      *string     `json:"fontWeight,omitempty" validate:"omitempty,oneof=bold normal"`
	TextAlign       *string     `json:"textAlign,omitempty" validate:"omitempty,oneof=left center right"`
	Padding         *Padding    `json:"padding,omitempty"`
}

// Padding insets are all required once a padding record is present.
type Padding struct {
	Top    *int `json:"top" validate:"required,min=0"`
	Bottom *int `json:"bottom" validate:"required,min=0"`
	Left   *int `json:"left" validate:"required,min=0"`
	Right  *int `json:"right" validate:"required,min=0"`
}

func NewPadding(top, bottom, left, right int) *Padding {
	return &Padding{Top: &top, Bottom: &bottom, Left: &left, Right: &right}
}

func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	c := *s
	if s.Padding != nil {
		p := *s.Padding
		c.Padding = &p
	}
	return &c
}

// Fields returns the JSON names of the fields set on the style.
func (s *Style) Fields() []string {
	if s == nil {
		return nil
	}
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(s.BackgroundColor != nil, "backgroundColor")
	add(s.Color != nil, "color")
	add(s.BorderColor != nil, "borderColor")
	add(s.BorderRadius != nil, "borderRadius")
	add(s.FontFamily != nil, "fontFamily")
	add(s.FontSize != nil, "fontSize")
	add(s.FontWeight != nil, "fontWeight")
	add(s.TextAlign != nil, "textAlign")
	add(s.Padding != nil, "padding")
	return fields
}
