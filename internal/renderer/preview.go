package renderer

import (
	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/pkg/document/store"
)

// Preview re-renders the store's document to static markup after every
// document commit and hands the result to fn. fn is also called once
// with the current document. The returned function stops the preview.
func Preview(s *store.Store, opts Options, logger *zap.Logger, fn func(string, error)) func() {
	if logger == nil {
		logger = zap.NewNop()
	}

	render := func() {
		state := s.Get()
		html, err := RenderToStaticMarkup(state.Document, opts)
		if err != nil {
			logger.Info("failed to render preview", zap.Uint64("revision", state.Revision), zap.Error(err))
		} else {
			logger.Debug("rendered preview", zap.Uint64("revision", state.Revision), zap.Int("bytes", len(html)))
		}
		fn(html, err)
	}

	unsubscribe := store.Subscribe(s, store.DocumentRevision, func(uint64) { render() })
	render()

	return unsubscribe
}
