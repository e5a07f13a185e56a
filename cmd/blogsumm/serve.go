package main

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.HTTP.Addr
	}
	deps.Logger.Info("listening", "addr", addr, "env", deps.Config.Env)
	if err := deps.Server.Run(deps.Ctx, addr); err != nil {
		printError(deps, err)
		return err
	}
	return nil
}
