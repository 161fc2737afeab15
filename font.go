package wheels

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/fzipp/bmfont"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Font measures the rendered extent of strings. Fonts never fail to measure:
// glyphs the font cannot shape are substituted or skipped.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font measurement.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("wheels: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
// Missing glyphs are replaced by the font's .notdef glyph.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- XFont ---

// XFont adapts a golang.org/x/image font.Face, such as basicfont or an
// opentype face, to the Font interface.
type XFont struct {
	face *text.GoXFace
	lh   float64
}

// NewXFont wraps face for measurement.
func NewXFont(face font.Face) *XFont {
	xf := text.NewGoXFace(face)
	m := xf.Metrics()
	return &XFont{face: xf, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// DefaultFont returns a 7x13 fixed-width font that needs no asset files.
func DefaultFont() *XFont {
	return NewXFont(basicfont.Face7x13)
}

// MeasureString returns the width and height of the rendered text.
func (f *XFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *XFont) LineHeight() float64 {
	return f.lh
}

// --- BitmapFont ---

type glyph struct {
	x, y     uint16
	width    uint16
	height   uint16
	xOffset  int16
	yOffset  int16
	xAdvance int16
	page     uint16
}

const asciiGlyphCount = 128

// BitmapFont measures text from a pre-rasterized BMFont glyph atlas. The atlas
// pages are uploaded as Textures when the font is loaded.
type BitmapFont struct {
	face       string
	lineHeight float64
	base       float64
	pages      []*Texture

	asciiGlyphs [asciiGlyphCount]glyph // fixed array for ASCII, zero-alloc lookup
	asciiSet    [asciiGlyphCount]bool
	extGlyphs   map[rune]*glyph

	kernings map[[2]rune]int16
}

// LoadBitmapFont reads a BMFont descriptor (.fnt) and its page images.
// Page files are resolved relative to the descriptor's directory and decoded
// once by bmfont.
func LoadBitmapFont(path string) (*BitmapFont, error) {
	bf, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("wheels: failed to load bitmap font %s: %w", path, err)
	}
	desc := bf.Descriptor

	f := &BitmapFont{
		face:       desc.Info.Face,
		lineHeight: float64(desc.Common.LineHeight),
		base:       float64(desc.Common.Base),
	}
	if f.lineHeight == 0 {
		return nil, fmt.Errorf("wheels: bitmap font %s is missing common lineHeight", path)
	}
	if len(desc.Chars) == 0 {
		return nil, fmt.Errorf("wheels: bitmap font %s has no char definitions", path)
	}

	for key, p := range desc.Pages {
		sheet, ok := bf.PageSheets[key]
		if !ok {
			return nil, fmt.Errorf("wheels: bitmap font %s: page %d has no image", path, p.ID)
		}
		id := int(p.ID)
		for len(f.pages) <= id {
			f.pages = append(f.pages, nil)
		}
		f.pages[id] = NewTextureFromImage(sheet, p.File)
	}

	for _, c := range desc.Chars {
		id := rune(c.ID)
		g := glyph{
			x:        uint16(c.X),
			y:        uint16(c.Y),
			width:    uint16(c.Width),
			height:   uint16(c.Height),
			xOffset:  int16(c.XOffset),
			yOffset:  int16(c.YOffset),
			xAdvance: int16(c.XAdvance),
			page:     uint16(c.Page),
		}
		if id >= 0 && id < asciiGlyphCount {
			f.asciiGlyphs[id] = g
			f.asciiSet[id] = true
			continue
		}
		if f.extGlyphs == nil {
			f.extGlyphs = make(map[rune]*glyph)
		}
		f.extGlyphs[id] = &g
	}

	for pair, k := range desc.Kerning {
		if f.kernings == nil {
			f.kernings = make(map[[2]rune]int16)
		}
		f.kernings[[2]rune{rune(pair.First), rune(pair.Second)}] = int16(k.Amount)
	}

	return f, nil
}

// Face returns the font face name from the descriptor.
func (f *BitmapFont) Face() string {
	return f.face
}

// Pages returns the glyph atlas textures indexed by page id.
func (f *BitmapFont) Pages() []*Texture {
	return f.pages
}

// MeasureString returns the width and height of the rendered text. Runes
// without a glyph are skipped.
func (f *BitmapFont) MeasureString(s string) (width, height float64) {
	var maxW float64
	var cursorX float64
	var prevRune rune
	var hasPrev bool
	lines := 1

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r == '\n' {
			if cursorX > maxW {
				maxW = cursorX
			}
			cursorX = 0
			lines++
			hasPrev = false
			continue
		}

		g := f.glyph(r)
		if g == nil {
			hasPrev = false
			continue
		}

		if hasPrev {
			cursorX += float64(f.kern(prevRune, r))
		}
		cursorX += float64(g.xAdvance)
		prevRune = r
		hasPrev = true
	}

	if cursorX > maxW {
		maxW = cursorX
	}
	return maxW, float64(lines) * f.lineHeight
}

// LineHeight returns the vertical distance between baselines.
func (f *BitmapFont) LineHeight() float64 {
	return f.lineHeight
}

// Base returns the distance from the top of a line to the baseline.
func (f *BitmapFont) Base() float64 {
	return f.base
}

// glyph returns the glyph for the given rune, or nil if not found.
func (f *BitmapFont) glyph(r rune) *glyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	if g, ok := f.extGlyphs[r]; ok {
		return g
	}
	return nil
}

// kern returns the kerning amount for the given rune pair.
func (f *BitmapFont) kern(first, second rune) int16 {
	if f.kernings == nil {
		return 0
	}
	return f.kernings[[2]rune{first, second}]
}
