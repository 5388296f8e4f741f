package cmd

import (
	"bytes"
	"fmt"

	"github.com/urfave/cli"

	"github.com/achilleasa/scenecache/device/opencl"
)

// ListDevices prints every opencl platform visible to the driver with its
// CPU and GPU devices, for selecting one to back a real device.Context.
func ListDevices(ctx *cli.Context) error {
	setupLogging(ctx)

	platforms, err := opencl.ListPlatforms()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\nfound %d opencl platform(s):\n\n", len(platforms))
	for i, p := range platforms {
		fmt.Fprintf(&buf, "[Platform %02d] %s", i, p.String())
	}

	logger.Notice(buf.String())
	return nil
}
