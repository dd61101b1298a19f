package codec

import (
	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/pkg/document/store"
)

// Import parses data and, only on success, replaces the store's
// document with it. On failure the store is left untouched.
func (c *Codec) Import(s *store.Store, data []byte) error {
	doc, err := c.Parse(data)
	if err != nil {
		return err
	}
	s.Reset(doc)
	c.logger.Debug("imported document", zap.Int("blocks", len(doc)))
	return nil
}
