package texture

import (
	"fmt"
	"image"

	"github.com/gogpu/rtscene/gpucore"
	"github.com/gogpu/rtscene/internal/cache"
	"github.com/gogpu/rtscene/internal/logger"
)

// decoded keeps recently loaded files so that a library rebuilt after
// Destroy uploads them again without decoding.
var decoded = cache.New[string, *image.RGBA](32)

// Library uploads named textures and assigns them dense indices.
type Library struct {
	adapter gpucore.TextureAdapter
	ids     []gpucore.TextureID
	names   map[string]int32
}

// NewLibrary creates an empty library.
func NewLibrary(adapter gpucore.TextureAdapter) *Library {
	return &Library{adapter: adapter, names: make(map[string]int32)}
}

// Add uploads img under name and returns its index. Adding a name twice
// returns the existing index without uploading again.
func (l *Library) Add(name string, img image.Image) (int32, error) {
	if idx, ok := l.names[name]; ok {
		return idx, nil
	}
	rgba, err := toRGBA(img)
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", name, err)
	}
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	id, err := l.adapter.CreateTexture(w, h, gpucore.TextureFormatRGBA8Unorm)
	if err != nil {
		return 0, fmt.Errorf("texture %s: create %dx%d: %w", name, w, h, err)
	}
	l.adapter.WriteTexture(id, rgba.Pix)

	idx := int32(len(l.ids))
	l.ids = append(l.ids, id)
	l.names[name] = idx
	logger.L().Debug("texture: uploaded", "name", name, "index", idx, "width", w, "height", h)
	return idx, nil
}

// LoadFile decodes the BMP at path and adds it under that path.
func (l *Library) LoadFile(path string) (int32, error) {
	if idx, ok := l.names[path]; ok {
		return idx, nil
	}
	img, ok := decoded.Get(path)
	if !ok {
		var err error
		if img, err = Load(path); err != nil {
			return 0, err
		}
		decoded.Set(path, img)
	}
	return l.Add(path, img)
}

// Index returns the index of a named texture.
func (l *Library) Index(name string) (int32, bool) {
	idx, ok := l.names[name]
	return idx, ok
}

// ID returns the GPU texture at index, or gpucore.InvalidID.
func (l *Library) ID(index int32) gpucore.TextureID {
	if index < 0 || int(index) >= len(l.ids) {
		return gpucore.InvalidID
	}
	return l.ids[index]
}

// Len returns the number of textures.
func (l *Library) Len() int { return len(l.ids) }

// Destroy releases every texture.
func (l *Library) Destroy() {
	for _, id := range l.ids {
		l.adapter.DestroyTexture(id)
	}
	l.ids = nil
	clear(l.names)
}
