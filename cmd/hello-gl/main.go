package main

import (
	"log"
	"os"

	"github.com/hubastard/hellogl/engine/core"
	"github.com/hubastard/hellogl/engine/demo"
	"github.com/hubastard/hellogl/engine/gfx"
	glbackend "github.com/hubastard/hellogl/engine/gfx/gl"
	"github.com/hubastard/hellogl/engine/logging"
	"github.com/hubastard/hellogl/engine/platform"
)

func main() {
	cfg, err := core.LoadConfig("hello-gl.toml", core.DefaultConfig("Hello GL!"))
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewText(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLogger(logger)

	app := &demo.Quad{Assets: demo.AssetFS(cfg.AssetDir)}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newDevice := func(core.Window, core.Config) (gfx.Device, error) {
		return glbackend.NewDevice()
	}

	if err := core.Run(app, cfg, newWindow, newDevice); err != nil {
		log.Fatal(err)
	}
}
