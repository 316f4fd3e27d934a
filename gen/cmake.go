package gen

import (
	_ "embed"

	"github.com/gmeeker/conan-darwin-toolchain/toolchain"
)

//go:embed darwin-toolchain.cmake
var toolchainFile []byte

func init() {
	Register("cmake", func() Generator { return &CMakeToolchainGenerator{} })
	Register("cmake_cache", func() Generator { return &CMakeCacheGenerator{} })
}

// ToolchainFile returns the static CMake toolchain file shipped in every package.
func ToolchainFile() []byte {
	return toolchainFile
}

// CMakeToolchainGenerator packages darwin-toolchain.cmake. The file does not
// depend on the settings; it reads the resolved variables from the environment.
type CMakeToolchainGenerator struct{}

func (g *CMakeToolchainGenerator) Name() string { return "cmake" }

func (g *CMakeToolchainGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	return []*OutputFile{{Path: toolchain.ToolchainFileName, Content: ToolchainFile()}}, nil
}

// CMakeCacheGenerator writes a cache preload script for `cmake -C`.
type CMakeCacheGenerator struct{}

func (g *CMakeCacheGenerator) Name() string { return "cmake_cache" }

func (g *CMakeCacheGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	content := Banner(ctx, "#") + "\n" + RenderCMakeCache(ctx.Result.Env)
	return []*OutputFile{{Path: "darwin-toolchain-cache.cmake", Content: []byte(content)}}, nil
}
