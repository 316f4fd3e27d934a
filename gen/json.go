package gen

func init() {
	Register("json", func() Generator { return &JSONGenerator{} })
}

// JSONGenerator writes the resolved toolchain as JSON.
type JSONGenerator struct{}

func (g *JSONGenerator) Name() string { return "json" }

func (g *JSONGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	content, err := RenderJSON(ctx.Result)
	if err != nil {
		return nil, err
	}
	return []*OutputFile{{Path: "darwin-toolchain.json", Content: []byte(content)}}, nil
}
