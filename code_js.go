//go:build js

package slider

import "context"

// Execute is unavailable when running in a browser.
func (c *ExecutableCode) Execute(_ context.Context) (string, error) {
	return "", ErrCodeExecutionUnsupported
}
