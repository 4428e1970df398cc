package preview

import (
	"image"
	"sync"

	"wallpick/internal/errors"
	"wallpick/internal/protocol"
)

type fakeProtocol struct{ path string }

func (f *fakeProtocol) Render(cols, rows int) string { return f.path }
func (f *fakeProtocol) Bounds() image.Rectangle      { return image.Rect(0, 0, 1, 1) }

// pathImage lets the fake builder know which file it is building.
type pathImage struct {
	image.Image
	path string
}

type fakeDecoder struct {
	mu     sync.Mutex
	calls  []string
	fail   map[string]error
	panics map[string]bool
	gate   chan struct{} // when set, each decode waits for a token
}

func (d *fakeDecoder) Decode(path string) (image.Image, error) {
	if d.gate != nil {
		<-d.gate
	}
	d.mu.Lock()
	d.calls = append(d.calls, path)
	d.mu.Unlock()

	if d.panics[path] {
		panic("decoder exploded")
	}
	if err, ok := d.fail[path]; ok {
		return nil, err
	}
	return &pathImage{Image: image.NewRGBA(image.Rect(0, 0, 1, 1)), path: path}, nil
}

func (d *fakeDecoder) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

type fakeBuilder struct {
	fail map[string]bool
}

func (b fakeBuilder) Build(img image.Image, _ protocol.Surface) (protocol.Protocol, error) {
	path := img.(*pathImage).path
	if b.fail[path] {
		return nil, errors.New("cannot build")
	}
	return &fakeProtocol{path: path}, nil
}

func proto(path string) protocol.Protocol { return &fakeProtocol{path: path} }
