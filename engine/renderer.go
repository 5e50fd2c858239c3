package engine

import (
	"log/slog"

	"github.com/cpcf/iconforge/postprocess"
	"github.com/cpcf/iconforge/snippet"
	"github.com/cpcf/iconforge/source"
)

// IconModule is one generated icon source, in discovery order.
type IconModule struct {
	Source       string
	VariableName string
	TypeName     string
	FileName     string
	Markup       string
	Content      string
}

type Renderer struct {
	logger     *slog.Logger
	extractor  *source.Extractor
	optimizers *postprocess.Chain
}

func NewRenderer(logger *slog.Logger, extractor *source.Extractor, optimizers *postprocess.Chain) *Renderer {
	return &Renderer{
		logger:     logger,
		extractor:  extractor,
		optimizers: optimizers,
	}
}

// Render reads the source markup of m, runs it through the optimizers and
// fills in Markup and Content.
func (r *Renderer) Render(m *IconModule) error {
	r.logger.Debug("rendering icon", "path", m.Source)

	raw, err := r.extractor.Extract(m.Source)
	if err != nil {
		return stageError(StageGenerating, KindIO, m.Source, err)
	}

	markup, err := r.optimizers.ProcessString(m.Source, raw)
	if err != nil {
		return stageError(StageGenerating, KindOptimization, m.Source, err)
	}

	m.Markup = markup
	m.Content = snippet.UntypedConstant(m.VariableName, m.TypeName, markup)
	return nil
}
