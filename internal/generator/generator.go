// Package generator runs the generation pipeline: validate the submitted
// configuration, assemble the project tree and publish it as an archive.
package generator

import (
	"context"
	"time"

	"github.com/appforge-labs/appforge/internal/artifact"
	apperrors "github.com/appforge-labs/appforge/internal/errors"
	"github.com/appforge-labs/appforge/internal/options"
	"github.com/appforge-labs/appforge/internal/output"
	"github.com/appforge-labs/appforge/internal/scaffold"
)

// Publisher stores an assembled tree and returns a handle to the archive.
type Publisher interface {
	Publish(ctx context.Context, tree artifact.Tree) (artifact.Handle, error)
}

// Service runs the pipeline. It is safe for concurrent use; each call works
// on its own tree and artifact.
type Service struct {
	publisher Publisher
	title     string
	apiURL    string
}

// Option configures a Service.
type Option func(*Service)

// WithTitle sets the title rendered into every generated app.
func WithTitle(title string) Option {
	return func(s *Service) {
		s.title = title
	}
}

// WithAPIURL sets the endpoint generated async actions fetch from.
func WithAPIURL(url string) Option {
	return func(s *Service) {
		s.apiURL = url
	}
}

// New creates a Service that publishes through p.
func New(p Publisher, opts ...Option) *Service {
	s := &Service{publisher: p}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build validates raw and assembles the project tree without publishing it.
func (s *Service) Build(ctx context.Context, raw options.Raw) (*scaffold.Tree, error) {
	cfg, err := options.Validate(raw)
	if err != nil {
		reason, _ := apperrors.ReasonOf(err)
		output.Info("configuration rejected", "reason", reason, "err", err)
		return nil, err
	}

	log := output.With("config", cfg.String())
	log.Debug("assembling project")

	tree, err := scaffold.Assemble(ctx, cfg, scaffold.WithTitle(s.title), scaffold.WithAPIURL(s.apiURL))
	if err != nil {
		log.Error("assembly failed", "kind", apperrors.KindOf(err), "err", err)
		return nil, err
	}
	log.Debug("project assembled", "files", tree.Len(), "bytes", tree.Size())
	return tree, nil
}

// Generate runs the full pipeline and returns the handle of the published
// archive. Validation errors are returned before any workspace exists. The
// class of any error is available through errors.KindOf.
func (s *Service) Generate(ctx context.Context, raw options.Raw) (artifact.Handle, error) {
	start := time.Now()

	tree, err := s.Build(ctx, raw)
	if err != nil {
		return artifact.Handle{}, err
	}

	h, err := s.publisher.Publish(ctx, tree)
	if err != nil {
		output.Error("publishing failed", "kind", apperrors.KindOf(err), "err", err)
		return artifact.Handle{}, err
	}

	output.Info("project generated", "id", h.ID, "files", h.Entries, "bytes", h.Size, "elapsed", time.Since(start).Round(time.Millisecond))
	return h, nil
}
