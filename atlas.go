package wheels

import (
	"encoding/json"
	"fmt"
	"slices"
)

// TextureRegion describes a sub-rectangle of a registered atlas texture, in
// texture pixels.
type TextureRegion struct {
	Texture   TextureHandle // atlas page the region lives on
	X, Y      uint16        // top-left corner of the sub-image rect within the page
	Width     uint16        // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    uint16        // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW uint16        // untrimmed sprite width as authored
	OriginalH uint16        // untrimmed sprite height as authored
	OffsetX   int16         // horizontal trim offset from TexturePacker
	OffsetY   int16         // vertical trim offset from TexturePacker
	Rotated   bool          // true if the region is stored 90 degrees clockwise in the atlas
}

// Atlas maps region names to TextureRegions on one or more registered pages.
type Atlas struct {
	// Pages holds the texture handle of each atlas page by page index.
	Pages   []TextureHandle
	regions map[string]TextureRegion
}

// Region returns the named region.
func (a *Atlas) Region(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	if !ok {
		Logger().Debug("atlas region not found", "name", name)
	}
	return r, ok
}

// Names returns the region names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// textures. Supports both the hash format (single "frames" object) and the
// array format ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []TextureHandle) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var envelope struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &envelope); err != nil {
		return nil, fmt.Errorf("wheels: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]TextureRegion),
	}

	switch {
	case envelope.Textures != nil:
		if err := parseArrayFormat(envelope.Textures, atlas); err != nil {
			return nil, err
		}
	case envelope.Frames != nil:
		if err := parseHashFrames(envelope.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("wheels: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	tex, err := atlas.page(page)
	if err != nil {
		return err
	}
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("wheels: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, tex)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("wheels: failed to parse atlas textures array: %w", err)
	}
	for i, page := range textures {
		tex, err := atlas.page(i)
		if err != nil {
			return fmt.Errorf("%w (image %q)", err, page.Image)
		}
		for name, f := range page.Frames {
			atlas.regions[name] = frameToRegion(f, tex)
		}
	}
	return nil
}

func (a *Atlas) page(i int) (TextureHandle, error) {
	if i >= len(a.Pages) {
		return 0, fmt.Errorf("wheels: atlas page %d has no texture (%d supplied): %w", i, len(a.Pages), ErrInvalidArgument)
	}
	return a.Pages[i], nil
}

func frameToRegion(f jsonFrame, tex TextureHandle) TextureRegion {
	return TextureRegion{
		Texture:   tex,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}
