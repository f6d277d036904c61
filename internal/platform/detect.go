package platform

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v4/host"
)

// Current returns the platform key of the running process.
// It never fails: an unrecognized host yields a key that is simply absent
// from the variant registry.
func Current() Key {
	return NewKey(hostOS(runtime.GOOS), hostArch(runtime.GOARCH))
}

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// OS and architecture come from the Go runtime; kernel architecture and,
// on Linux, distribution details come from gopsutil.
//
// Detection failures from gopsutil leave the corresponding fields empty.
// Only a cancelled context is reported as an error.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:     hostOS(runtime.GOOS),
		Arch:   hostArch(runtime.GOARCH),
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
	}

	if kernelArch, err := host.KernelArch(); err == nil {
		info.KernelArch = kernelArch
	}

	if runtime.GOOS != "linux" {
		return info, nil
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "platform detection cancelled")
		}
		return info, nil
	}

	platform = normalizePlatform(platform)
	if platform != "" {
		info.Platform = platform
		info.Family = mapFamily(family)
		info.Version = normalizePlatform(version)
	}

	return info, nil
}
