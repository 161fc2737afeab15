package wheels

import (
	"errors"
	"slices"
	"testing"
)

// --- Test JSON fixtures ---

const singlePageJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
      "sourceSize": {"w": 64, "h": 64}
    },
    "enemy.png": {
      "frame": {"x": 64, "y": 0, "w": 32, "h": 48},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 32, "h": 48},
      "sourceSize": {"w": 32, "h": 48}
    },
    "trimmed.png": {
      "frame": {"x": 100, "y": 50, "w": 60, "h": 58},
      "rotated": false,
      "trimmed": true,
      "spriteSourceSize": {"x": 2, "y": 3, "w": 60, "h": 58},
      "sourceSize": {"w": 64, "h": 64}
    },
    "rotated.png": {
      "frame": {"x": 200, "y": 0, "w": 48, "h": 32},
      "rotated": true,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 48, "h": 32},
      "sourceSize": {"w": 32, "h": 48}
    }
  },
  "meta": {
    "image": "atlas.png",
    "size": {"w": 1024, "h": 1024}
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0_sprite.png": {
          "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
          "rotated": false,
          "trimmed": false,
          "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
          "sourceSize": {"w": 64, "h": 64}
        }
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1_sprite.png": {
          "frame": {"x": 10, "y": 20, "w": 50, "h": 50},
          "rotated": false,
          "trimmed": false,
          "spriteSourceSize": {"x": 0, "y": 0, "w": 50, "h": 50},
          "sourceSize": {"w": 50, "h": 50}
        }
      }
    }
  ]
}`

// --- LoadAtlas tests ---

func TestLoadAtlasSinglePage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []TextureHandle{7})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	want := []string{"enemy.png", "hero.png", "rotated.png", "trimmed.png"}
	if got := atlas.Names(); !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	r, ok := atlas.Region("enemy.png")
	if !ok {
		t.Fatal("enemy.png not found")
	}
	if r.Texture != 7 || r.X != 64 || r.Y != 0 || r.Width != 32 || r.Height != 48 {
		t.Errorf("enemy region = %+v", r)
	}
}

func TestLoadAtlasTrimmedAndRotated(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []TextureHandle{0})
	if err != nil {
		t.Fatal(err)
	}
	tr, _ := atlas.Region("trimmed.png")
	if tr.OffsetX != 2 || tr.OffsetY != 3 || tr.OriginalW != 64 || tr.OriginalH != 64 {
		t.Errorf("trimmed region = %+v", tr)
	}
	rot, _ := atlas.Region("rotated.png")
	if !rot.Rotated {
		t.Error("rotated.png not marked Rotated")
	}
}

func TestLoadAtlasMultiPage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(multiPageJSON), []TextureHandle{3, 4})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	r0, _ := atlas.Region("page0_sprite.png")
	r1, _ := atlas.Region("page1_sprite.png")
	if r0.Texture != 3 || r1.Texture != 4 {
		t.Errorf("page textures = (%d, %d), want (3, 4)", r0.Texture, r1.Texture)
	}
	if r1.X != 10 || r1.Y != 20 {
		t.Errorf("page1 region origin = (%d, %d)", r1.X, r1.Y)
	}
}

func TestLoadAtlasMissingPage(t *testing.T) {
	_, err := LoadAtlas([]byte(multiPageJSON), []TextureHandle{3})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestLoadAtlasInvalidJSON(t *testing.T) {
	if _, err := LoadAtlas([]byte("{not json"), nil); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := LoadAtlas([]byte(`{"meta": {}}`), nil); err == nil {
		t.Error("expected error for JSON without frames or textures")
	}
}

func TestAtlasRegionMissing(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []TextureHandle{0})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := atlas.Region("nope.png"); ok {
		t.Error("Region(nope.png) found")
	}
}
