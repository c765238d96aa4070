package mock

import chatpage "github.com/wanderxuhq/chat-with-page-sub000"

var _ chatpage.Converter = (*Converter)(nil)

// Converter is a mock implementation of chatpage.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
