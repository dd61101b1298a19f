// Package markup renders blocks to email-safe HTML with inline styles.
// Output depends only on the input block, so rendering the same
// document twice yields identical bytes.
package markup

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"

	"github.com/stateful/emailbuilder/pkg/document"
)

const (
	defaultBackdropColor = "#F5F5F5"
	defaultCanvasColor   = "#FFFFFF"
	defaultTextColor     = "#262626"
	defaultFontFamily    = document.FontModernSans
	canvasWidth          = 600
)

// Document wraps rendered blocks into a complete HTML document.
func Document(body string) string {
	return "<!DOCTYPE html><html><body>" + body + "</body></html>"
}

type Renderer struct {
	md goldmark.Markdown
}

func New() *Renderer {
	return &Renderer{md: goldmark.New()}
}

func (r *Renderer) Leaf(id document.BlockID, block document.Block) (string, error) {
	switch block.Type {
	case document.AvatarBlockType:
		return avatar(block), nil
	case document.ButtonBlockType:
		return button(block), nil
	case document.DividerBlockType:
		return divider(block), nil
	case document.HeadingBlockType:
		return heading(block), nil
	case document.HTMLBlockType:
		return rawHTML(block), nil
	case document.ImageBlockType:
		return image(block), nil
	case document.SpacerBlockType:
		return spacer(block), nil
	case document.TextBlockType:
		return r.text(block)
	default:
		return "", errors.Errorf("block %q: %s is not a leaf", id, block.Type)
	}
}

func (r *Renderer) Container(id document.BlockID, block document.Block, columns [][]string) (string, error) {
	if len(columns) < block.Type.ColumnCount() {
		return "", errors.Errorf("block %q: expected %d columns, got %d", id, block.Type.ColumnCount(), len(columns))
	}

	switch block.Type {
	case document.ContainerBlockType:
		return container(block, columns[0]), nil
	case document.ColumnsContainerBlockType:
		return columnsContainer(block, columns), nil
	case document.EmailLayoutBlockType:
		return layout(block, columns[0]), nil
	default:
		return "", errors.Errorf("block %q: %s is not a container", id, block.Type)
	}
}

func propsOf[P any](block document.Block) *P {
	if p, ok := any(block.Data.Props).(*P); ok && p != nil {
		return p
	}
	return new(P)
}

func styleOf(block document.Block) *document.Style {
	if block.Data.Style == nil {
		return &document.Style{}
	}
	return block.Data.Style
}

// textCSS holds the declarations shared by text-like blocks.
func textCSS(s *document.Style) css {
	var c css
	c.add("color", str(s.Color))
	c.add("background-color", str(s.BackgroundColor))
	c.add("font-size", pxPtr(s.FontSize))
	c.add("font-family", fontStack(s.FontFamily))
	c.add("font-weight", str(s.FontWeight))
	c.add("text-align", str(s.TextAlign))
	c.add("padding", padding(s.Padding))
	return c
}

func (r *Renderer) text(block document.Block) (string, error) {
	p := propsOf[document.TextProps](block)

	content := escape(str(p.Text))
	if p.Markdown != nil && *p.Markdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(str(p.Text)), &buf); err != nil {
			return "", errors.Wrap(err, "failed to render markdown")
		}
		content = buf.String()
	}

	return element("div", styled(textCSS(styleOf(block))), content), nil
}

var headingSizes = map[string]int{"h1": 32, "h2": 24, "h3": 20}

func heading(block document.Block) string {
	p := propsOf[document.HeadingProps](block)
	s := styleOf(block)

	level := strOr(p.Level, "h2")
	size, ok := headingSizes[level]
	if !ok {
		level, size = "h2", headingSizes["h2"]
	}

	var c css
	c.add("color", str(s.Color))
	c.add("background-color", str(s.BackgroundColor))
	c.add("font-weight", strOr(s.FontWeight, "bold"))
	c.add("text-align", str(s.TextAlign))
	c.add("margin", "0")
	c.add("font-family", fontStack(s.FontFamily))
	c.add("font-size", px(intOr(s.FontSize, size)))
	c.add("padding", padding(s.Padding))

	return element(level, styled(c), escape(str(p.Text)))
}

var buttonPaddings = map[string]string{
	"x-small": "4px 8px",
	"small":   "8px 12px",
	"medium":  "12px 20px",
	"large":   "16px 32px",
}

var buttonRadii = map[string]string{
	"rectangle": "",
	"rounded":   "4px",
	"pill":      "64px",
}

func button(block document.Block) string {
	p := propsOf[document.ButtonProps](block)
	s := styleOf(block)

	var wrapper css
	wrapper.add("background-color", str(s.BackgroundColor))
	wrapper.add("text-align", str(s.TextAlign))
	wrapper.add("padding", padding(s.Padding))

	fullWidth := p.FullWidth != nil && *p.FullWidth
	display := "inline-block"
	if fullWidth {
		display = "block"
	}

	var link css
	link.add("color", strOr(p.ButtonTextColor, "#FFFFFF"))
	link.add("font-size", px(intOr(s.FontSize, 16)))
	link.add("font-family", fontStack(s.FontFamily))
	link.add("font-weight", strOr(s.FontWeight, "bold"))
	link.add("background-color", strOr(p.ButtonBackgroundColor, "#999999"))
	link.add("border-radius", buttonRadii[strOr(p.ButtonStyle, "rounded")])
	link.add("display", display)
	if fullWidth {
		link.add("width", "100%")
	}
	link.add("padding", buttonPaddings[strOr(p.Size, "medium")])
	link.add("text-decoration", "none")

	attrs := attributes{}
	attrs.set("href", str(p.URL))
	attrs.set("style", link.String())
	attrs.set("target", "_blank")

	return element("div", styled(wrapper), element("a", attrs, element("span", nil, escape(str(p.Text)))))
}

func image(block document.Block) string {
	p := propsOf[document.ImageProps](block)
	s := styleOf(block)

	var wrapper css
	wrapper.add("padding", padding(s.Padding))
	wrapper.add("background-color", str(s.BackgroundColor))
	wrapper.add("text-align", str(s.TextAlign))

	var c css
	c.add("width", pxPtr(p.Width))
	c.add("height", pxPtr(p.Height))
	c.add("outline", "none")
	c.add("border", "none")
	c.add("text-decoration", "none")
	c.add("vertical-align", strOr(p.ContentAlignment, "middle"))
	c.add("display", "inline-block")
	c.add("max-width", "100%")

	var attrs attributes
	attrs.always("alt", str(p.Alt))
	attrs.set("src", str(p.URL))
	if p.Width != nil {
		attrs.set("width", strconv.Itoa(*p.Width))
	}
	if p.Height != nil {
		attrs.set("height", strconv.Itoa(*p.Height))
	}
	attrs.set("style", c.String())

	img := void("img", attrs)
	if href := str(p.LinkHref); href != "" {
		var link attributes
		link.set("href", href)
		link.set("style", "text-decoration:none")
		link.set("target", "_blank")
		img = element("a", link, img)
	}

	return element("div", styled(wrapper), img)
}

func divider(block document.Block) string {
	p := propsOf[document.DividerProps](block)
	s := styleOf(block)

	var wrapper css
	wrapper.add("padding", padding(s.Padding))
	wrapper.add("background-color", str(s.BackgroundColor))

	var line css
	line.add("width", "100%")
	line.add("border", "none")
	line.add("border-top", px(intOr(p.LineHeight, 1))+" solid "+strOr(p.LineColor, "#333333"))
	line.add("margin", "0")

	return element("div", styled(wrapper), void("hr", styled(line)))
}

func spacer(block document.Block) string {
	p := propsOf[document.SpacerProps](block)
	s := styleOf(block)

	var c css
	c.add("height", px(intOr(p.Height, 16)))
	c.add("background-color", str(s.BackgroundColor))

	return element("div", styled(c), "")
}

func avatar(block document.Block) string {
	p := propsOf[document.AvatarProps](block)
	s := styleOf(block)

	size := intOr(p.Size, 64)

	var radius string
	switch strOr(p.Shape, "square") {
	case "circle":
		radius = px(size)
	case "rounded":
		radius = pxFloat(float64(size) * 0.125)
	}

	var wrapper css
	wrapper.add("text-align", str(s.TextAlign))
	wrapper.add("padding", padding(s.Padding))

	var c css
	c.add("border-radius", radius)
	c.add("display", "inline-block")
	c.add("object-fit", "cover")
	c.add("height", px(size))
	c.add("width", px(size))
	c.add("max-width", "100%")
	c.add("vertical-align", "middle")
	c.add("text-decoration", "none")
	c.add("border", "none")

	var attrs attributes
	attrs.always("alt", str(p.Alt))
	attrs.set("src", str(p.ImageURL))
	attrs.set("height", strconv.Itoa(size))
	attrs.set("width", strconv.Itoa(size))
	attrs.set("style", c.String())

	return element("div", styled(wrapper), void("img", attrs))
}

// rawHTML inserts the contents verbatim. They are not sanitised.
func rawHTML(block document.Block) string {
	p := propsOf[document.HTMLProps](block)
	return element("div", styled(textCSS(styleOf(block))), str(p.Contents))
}

func container(block document.Block, children []string) string {
	s := styleOf(block)

	var c css
	c.add("background-color", str(s.BackgroundColor))
	c.add("border", border(s.BorderColor))
	c.add("border-radius", pxPtr(s.BorderRadius))
	c.add("padding", padding(s.Padding))

	return element("div", styled(c), strings.Join(children, ""))
}

// columnGaps returns the left and right inner padding of column i so
// that the gap is split evenly between neighbours.
func columnGaps(count, i int, gap float64) (left, right float64) {
	if count == 2 {
		if i == 0 {
			return 0, gap / 2
		}
		return gap / 2, 0
	}
	switch i {
	case 0:
		return 0, gap * 2 / 3
	case 1:
		return gap / 3, gap / 3
	default:
		return gap * 2 / 3, 0
	}
}

func columnsContainer(block document.Block, columns [][]string) string {
	p := propsOf[document.ColumnsContainerProps](block)
	s := styleOf(block)

	count := intOr(p.ColumnsCount, 3)
	if count != 2 {
		count = 3
	}
	gap := float64(intOr(p.ColumnsGap, 0))
	align := strOr(p.ContentAlignment, "middle")

	var cells strings.Builder
	for i := 0; i < count; i++ {
		left, right := columnGaps(count, i, gap)

		var c css
		c.add("box-sizing", "content-box")
		c.add("vertical-align", align)
		if left > 0 {
			c.add("padding-left", pxFloat(left))
		}
		if right > 0 {
			c.add("padding-right", pxFloat(right))
		}
		if i < len(p.FixedWidths) {
			c.add("width", pxPtr(p.FixedWidths[i]))
		}

		cells.WriteString(element("td", styled(c), strings.Join(columns[i], "")))
	}

	var wrapper css
	wrapper.add("background-color", str(s.BackgroundColor))
	wrapper.add("padding", padding(s.Padding))

	var table attributes
	table.set("align", "center")
	table.set("width", "100%")
	table.set("cellpadding", "0")
	table.set("border", "0")
	table.set("style", "table-layout:fixed;border-collapse:collapse")

	row := element("tr", attributes{{name: "style", value: "width:100%"}}, cells.String())
	body := element("tbody", attributes{{name: "style", value: "width:100%"}}, row)

	return element("div", styled(wrapper), element("table", table, body))
}

func layout(block document.Block, children []string) string {
	p := propsOf[document.EmailLayoutProps](block)

	font := defaultFontFamily
	if p.FontFamily != nil && p.FontFamily.Valid() {
		font = *p.FontFamily
	}

	var backdrop css
	backdrop.add("background-color", strOr(p.BackdropColor, defaultBackdropColor))
	backdrop.add("color", strOr(p.TextColor, defaultTextColor))
	backdrop.add("font-family", font.Stack())
	backdrop.add("font-size", "16px")
	backdrop.add("font-weight", "400")
	backdrop.add("letter-spacing", "0.15008px")
	backdrop.add("line-height", "1.5")
	backdrop.add("margin", "0")
	backdrop.add("padding", "32px 0")
	backdrop.add("min-height", "100%")
	backdrop.add("width", "100%")

	var canvas css
	canvas.add("margin", "0 auto")
	canvas.add("max-width", px(canvasWidth))
	canvas.add("background-color", strOr(p.CanvasColor, defaultCanvasColor))
	canvas.add("border-radius", pxPtr(p.BorderRadius))
	canvas.add("border", border(p.BorderColor))

	var table attributes
	table.set("align", "center")
	table.set("width", "100%")
	table.set("style", canvas.String())
	table.set("role", "presentation")
	table.set("cellspacing", "0")
	table.set("cellpadding", "0")
	table.set("border", "0")

	cell := element("td", nil, strings.Join(children, ""))
	row := element("tr", attributes{{name: "style", value: "width:100%"}}, cell)
	body := element("tbody", nil, row)

	return element("div", styled(backdrop), element("table", table, body))
}
