package cmd

import (
	"github.com/urfave/cli"

	"github.com/achilleasa/scenecache/compiler"
	"github.com/achilleasa/scenecache/device/memory"
	"github.com/achilleasa/scenecache/intersector/mock"
)

// CompileScene builds a demo scene and compiles it twice, demonstrating the
// full-rebuild pass followed by the no-mutation fast path (§8 scenario 1),
// then prints the resulting buffer breakdown.
func CompileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	scene := BuildDemoScene()
	tracker := compiler.New(memory.New(), mock.New())

	logger.Notice("compiling scene (full rebuild expected)")
	if _, err := tracker.Compile(scene); err != nil {
		return err
	}

	logger.Notice("compiling scene again (no mutation, fast path expected)")
	compiled, err := tracker.Compile(scene)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", compiled.Stats())
	return nil
}
