package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/starfield/pkg/errors"
)

type xmlDocument struct {
	XMLName xml.Name
	Version string      `xml:"version,attr,omitempty"`
	Width   string      `xml:"width,attr"`
	Height  string      `xml:"height,attr"`
	ViewBox string      `xml:"viewBox,attr,omitempty"`
	Rects   []xmlRect   `xml:"rect"`
	Circles []xmlCircle `xml:"circle"`
}

type xmlRect struct {
	X           string `xml:"x,attr"`
	Y           string `xml:"y,attr"`
	Width       string `xml:"width,attr"`
	Height      string `xml:"height,attr"`
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr,omitempty"`
	Style       string `xml:"style,attr,omitempty"`
}

type xmlCircle struct {
	CX          string `xml:"cx,attr"`
	CY          string `xml:"cy,attr"`
	R           string `xml:"r,attr"`
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr,omitempty"`
	Stroke      string `xml:"stroke,attr,omitempty"`
	Style       string `xml:"style,attr,omitempty"`
}

// Marshal returns the document as SVG markup, including the XML header.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the document as SVG markup to w.
func (d *Document) Encode(w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}

	out := xmlDocument{
		XMLName: xml.Name{Space: Namespace, Local: "svg"},
		Version: "1.1",
		Width:   formatFloat(d.Width) + d.Unit,
		Height:  formatFloat(d.Height) + d.Unit,
		ViewBox: fmt.Sprintf("0 0 %s %s", formatFloat(d.Width), formatFloat(d.Height)),
		Rects: []xmlRect{{
			X:           formatFloat(d.Background.X),
			Y:           formatFloat(d.Background.Y),
			Width:       formatFloat(d.Background.Width),
			Height:      formatFloat(d.Background.Height),
			Fill:        formatColor(d.Background.Fill),
			FillOpacity: "1",
		}},
		Circles: make([]xmlCircle, len(d.Circles)),
	}
	for i, c := range d.Circles {
		out.Circles[i] = xmlCircle{
			CX:          formatFloat(c.CX),
			CY:          formatFloat(c.CY),
			R:           formatFloat(c.R),
			Fill:        formatColor(c.Fill),
			FillOpacity: formatFloat(c.FillOpacity),
			Stroke:      "none",
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Parse reads SVG markup produced by [Document.Marshal] (or any markup of the
// same shape) back into a Document.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads SVG markup from r. See [Parse].
func Decode(r io.Reader) (*Document, error) {
	var in xmlDocument
	if err := xml.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "decode svg")
	}
	if in.XMLName.Local != "svg" {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "root element is <%s>, want <svg>", in.XMLName.Local)
	}
	if len(in.Rects) != 1 {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "want exactly one background rect, found %d", len(in.Rects))
	}

	width, unit, err := parseLength(in.Width)
	if err != nil {
		return nil, markupErr(err, "svg width")
	}
	height, heightUnit, err := parseLength(in.Height)
	if err != nil {
		return nil, markupErr(err, "svg height")
	}
	if unit != heightUnit {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "width unit %q does not match height unit %q", unit, heightUnit)
	}
	if in.ViewBox != "" {
		if width, height, err = parseViewBox(in.ViewBox); err != nil {
			return nil, markupErr(err, "viewBox")
		}
	}

	bg, err := decodeRect(in.Rects[0])
	if err != nil {
		return nil, markupErr(err, "rect")
	}

	doc := &Document{
		Width:      width,
		Height:     height,
		Unit:       unit,
		Background: bg,
		Circles:    make([]Circle, 0, len(in.Circles)),
	}
	for i, xc := range in.Circles {
		c, err := decodeCircle(xc)
		if err != nil {
			return nil, markupErr(err, fmt.Sprintf("circle %d", i))
		}
		doc.Circles = append(doc.Circles, c)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeRect(x xmlRect) (Rect, error) {
	var r Rect
	var err error
	if r.X, err = parseCoord(x.X, 0); err != nil {
		return r, err
	}
	if r.Y, err = parseCoord(x.Y, 0); err != nil {
		return r, err
	}
	if r.Width, err = parseCoord(x.Width, -1); err != nil {
		return r, err
	}
	if r.Height, err = parseCoord(x.Height, -1); err != nil {
		return r, err
	}
	if r.Fill, err = parseColor(attrOrStyle(x.Fill, x.Style, "fill")); err != nil {
		return r, err
	}
	return r, nil
}

func decodeCircle(x xmlCircle) (Circle, error) {
	var c Circle
	var err error
	if c.CX, err = parseCoord(x.CX, -1); err != nil {
		return c, err
	}
	if c.CY, err = parseCoord(x.CY, -1); err != nil {
		return c, err
	}
	if c.R, err = parseCoord(x.R, -1); err != nil {
		return c, err
	}
	if c.Fill, err = parseColor(attrOrStyle(x.Fill, x.Style, "fill")); err != nil {
		return c, err
	}
	c.FillOpacity = 1
	if op := attrOrStyle(x.FillOpacity, x.Style, "fill-opacity"); op != "" {
		if c.FillOpacity, err = strconv.ParseFloat(strings.TrimSpace(op), 64); err != nil {
			return c, fmt.Errorf("fill-opacity %q: %w", op, err)
		}
	}
	if stroke := attrOrStyle(x.Stroke, x.Style, "stroke"); stroke != "" && stroke != "none" {
		return c, fmt.Errorf("stroke %q is not supported", stroke)
	}
	return c, nil
}

// attrOrStyle returns the presentation attribute value, falling back to the
// matching property of an inline style="a:b;c:d" declaration.
func attrOrStyle(attr, style, prop string) string {
	if attr != "" {
		return attr
	}
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == prop {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// parseLength splits "2000mm" into 2000 and "mm".
func parseLength(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", fmt.Errorf("missing length")
	}
	unit := ""
	for _, u := range unitNames {
		if strings.HasSuffix(s, u) {
			unit = u
			s = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "", fmt.Errorf("length %q: %w", s, err)
	}
	return v, unit, nil
}

// parseCoord parses a coordinate attribute, ignoring any unit suffix.
// An empty value yields def, or an error when def is negative.
func parseCoord(s string, def float64) (float64, error) {
	if strings.TrimSpace(s) == "" {
		if def < 0 {
			return 0, fmt.Errorf("missing attribute")
		}
		return def, nil
	}
	v, _, err := parseLength(s)
	return v, err
}

func parseViewBox(s string) (float64, float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("want 4 numbers, got %q", s)
	}
	var nums [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%q: %w", s, err)
		}
		nums[i] = v
	}
	if nums[0] != 0 || nums[1] != 0 {
		return 0, 0, fmt.Errorf("non-zero origin %q is not supported", s)
	}
	return nums[2], nums[3], nil
}

func parseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("fill %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func markupErr(err error, what string) error {
	return errors.Wrap(errors.ErrCodeInvalidMarkup, err, "invalid %s", what)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
