package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

//go:embed *.png characters/*.png
var assetsFS embed.FS

// Library caches decoded images. Scenes receive a *Library; a nil library
// means no art is attached, which is how headless tests build worlds.
type Library struct {
	mu     sync.Mutex
	images map[string]*ebiten.Image
	face   text.Face
}

func NewLibrary() *Library {
	return &Library{
		images: make(map[string]*ebiten.Image),
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Image returns the decoded image at path, loading it on first use.
func (l *Library) Image(path string) (*ebiten.Image, error) {
	if l == nil {
		return nil, nil
	}
	clean := cleanAssetPath(path)

	l.mu.Lock()
	defer l.mu.Unlock()
	if img, ok := l.images[clean]; ok {
		return img, nil
	}
	img, err := LoadImage(clean)
	if err != nil {
		return nil, err
	}
	l.images[clean] = img
	return img, nil
}

// Face is the HUD font.
func (l *Library) Face() text.Face {
	if l == nil {
		return nil
	}
	return l.face
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return b, nil
}

// Exists reports whether path names an embedded asset.
func Exists(path string) bool {
	_, err := assetsFS.ReadFile(cleanAssetPath(path))
	return err == nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
