package cmd

// Middleware wraps a command's run (e.g. logging, argument checks). It receives
// the command for its metadata and the run it wraps.
type Middleware func(c *Command, next RunFunc) RunFunc

// Apply replaces c.Run with c.Run wrapped by mws; the first in the list is the outermost.
func Apply(c *Command, mws ...Middleware) {
	run := c.Run
	if run == nil {
		return
	}
	for i := len(mws) - 1; i >= 0; i-- {
		run = mws[i](c, run)
	}
	c.Run = run
}
