package gen

func init() {
	Register("env", func() Generator { return &EnvGenerator{} })
}

// EnvGenerator writes a POSIX shell script exporting the toolchain variables.
type EnvGenerator struct{}

func (g *EnvGenerator) Name() string { return "env" }

func (g *EnvGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	content := "#!/bin/sh\n" + Banner(ctx, "#") + "\n" + RenderEnv(ctx.Result.Env)
	return []*OutputFile{{Path: "darwin-toolchain.env.sh", Content: []byte(content), Mode: 0755}}, nil
}
