package opencl

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

const (
	platformBufferSize = 32
	deviceBufferSize   = 32
	dataBufferSize     = 1024
)

// DeviceInfo describes a single opencl device available on a platform, just
// enough to let a caller pick one to drive a Context.
type DeviceInfo struct {
	Name string
	Type string
	ID   cl.DeviceId
}

// PlatformInfo describes a system opencl platform and the devices it
// exposes.
type PlatformInfo struct {
	Name       string
	Vendor     string
	Version    string
	Profile    string
	Devices    []DeviceInfo
}

func (p PlatformInfo) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%s, %s)\n", p.Name, p.Vendor, p.Version)
	for _, d := range p.Devices {
		fmt.Fprintf(&buf, "  [%s] %s\n", d.Type, d.Name)
	}
	return buf.String()
}

// ListPlatforms enumerates the opencl platforms visible to the driver and
// the CPU and GPU devices of each (other device types are not listed), for
// the CLI's list-devices command. This does not allocate a
// context or command queue; that remains the caller's responsibility.
func ListPlatforms() ([]PlatformInfo, error) {
	pids := make([]cl.PlatformID, platformBufferSize)
	pidCount := uint32(0)
	cl.GetPlatformIDs(uint32(len(pids)), &pids[0], &pidCount)

	data := make([]byte, dataBufferSize)
	var dataLen uint64

	devices := make([]cl.DeviceId, deviceBufferSize)

	platforms := make([]PlatformInfo, 0, pidCount)
	for i := 0; i < int(pidCount); i++ {
		var p PlatformInfo

		cl.GetPlatformInfo(pids[i], cl.PLATFORM_NAME, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		p.Name = string(data[0 : dataLen-1])

		cl.GetPlatformInfo(pids[i], cl.PLATFORM_VENDOR, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		p.Vendor = string(data[0 : dataLen-1])

		cl.GetPlatformInfo(pids[i], cl.PLATFORM_VERSION, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		p.Version = string(data[0 : dataLen-1])

		cl.GetPlatformInfo(pids[i], cl.PLATFORM_PROFILE, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		p.Profile = string(data[0 : dataLen-1])

		deviceCount := uint32(0)
		cl.GetDeviceIDs(pids[i], cl.DEVICE_TYPE_CPU, uint32(len(devices)), &devices[0], &deviceCount)
		for d := 0; d < int(deviceCount); d++ {
			cl.GetDeviceInfo(devices[d], cl.DEVICE_NAME, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
			p.Devices = append(p.Devices, DeviceInfo{Name: string(data[0 : dataLen-1]), Type: "CPU", ID: devices[d]})
		}

		deviceCount = 0
		cl.GetDeviceIDs(pids[i], cl.DEVICE_TYPE_GPU, uint32(len(devices)), &devices[0], &deviceCount)
		for d := 0; d < int(deviceCount); d++ {
			cl.GetDeviceInfo(devices[d], cl.DEVICE_NAME, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
			p.Devices = append(p.Devices, DeviceInfo{Name: string(data[0 : dataLen-1]), Type: "GPU", ID: devices[d]})
		}

		platforms = append(platforms, p)
	}

	return platforms, nil
}
