package mdtree

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Renderer turns generic trees into markdown text.
//
// Every render lowers the current state of the tree afresh; nothing is
// cached between calls. A Renderer may be reused but is not safe for
// concurrent use on the same store.
type Renderer struct {
	Options Options
	// Logger receives debug records for each render. Nil disables
	// logging.
	Logger *zap.Logger
	// Transforms run in order on the lowered document before it is
	// written.
	Transforms []func(*Doc) (*Doc, error)
}

// NewRenderer returns a renderer with the given style and logger.
func NewRenderer(opts Options, logger *zap.Logger) *Renderer {
	return &Renderer{Options: opts, Logger: logger}
}

func (r *Renderer) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Render lowers the tree rooted at root and returns its markdown text.
// Role and property errors are returned unwrapped; on error no text is
// produced.
func (r *Renderer) Render(s *Store, root NodeID) (string, error) {
	if err := r.Options.withDefaults().Validate(); err != nil {
		return "", err
	}
	log := r.logger().With(zap.String("render_id", uuid.NewString()))
	doc, err := Lower(s, root)
	if err != nil {
		log.Debug("lowering failed", zap.Error(err))
		return "", err
	}
	if len(r.Transforms) > 0 {
		if doc, err = doc.Apply(r.Transforms...); err != nil {
			log.Debug("transform failed", zap.Error(err))
			return "", errors.Wrap(err, "transform")
		}
	}
	if ce := log.Check(zap.DebugLevel, "lowered"); ce != nil {
		ce.Write(r.docFields(s, root, doc)...)
	}
	out := Format(doc, r.Options)
	log.Debug("rendered", zap.Int("bytes", len(out)))
	return out, nil
}

func (r *Renderer) docFields(s *Store, root NodeID, doc *Doc) []zap.Field {
	var blocks, headings int
	Query(doc, func(b Block) WalkResult {
		blocks++
		if Is[*Heading](b) {
			headings++
		}
		return WalkContinue
	})
	fields := []zap.Field{
		zap.Int("nodes", s.Size(root)),
		zap.Int("blocks", blocks),
		zap.Int("headings", headings),
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc); err == nil {
		fields = append(fields, zap.String("ast", buf.String()))
	}
	return fields
}

// RenderContainer renders the tree attached to c. An empty container
// renders as a single newline.
func (r *Renderer) RenderContainer(c *Container) (string, error) {
	if c.Root() == NoNode {
		if err := r.Options.withDefaults().Validate(); err != nil {
			return "", err
		}
		return Format(&Doc{}, r.Options), nil
	}
	return r.Render(c.Store(), c.Root())
}

// Render renders the tree rooted at root with the default style.
func Render(s *Store, root NodeID) (string, error) {
	return NewRenderer(DefaultOptions(), nil).Render(s, root)
}
