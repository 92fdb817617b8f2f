package transform

import "github.com/microcosm-cc/bluemonday"

// policy strips scripts, handlers and inline style from markup before it is
// sent to a model. Class attributes are kept since the reduced stylesheet
// and the component both refer to them.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}()

// Sanitize returns html safe to embed in a prompt.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
