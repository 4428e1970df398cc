package preview

import (
	"image"

	"wallpick/internal/protocol"
)

// Result is what the worker reports for one request. Exactly one of
// Protocol and Err is set.
type Result struct {
	Path     string
	Protocol protocol.Protocol
	Err      error
}

// OK reports whether the decode succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Decoder reads an image file.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// Builder turns a decoded image into something the terminal can draw.
type Builder interface {
	Build(img image.Image, s protocol.Surface) (protocol.Protocol, error)
}

// Requester accepts decode requests. *Queue implements it.
type Requester interface {
	Push(path string) error
}
