package domain

import (
	"path"
	"strconv"
	"strings"
)

// DevicePrefix is the directory every block device path must live under.
const DevicePrefix = "/dev/"

// IsDevicePath reports whether p names something below /dev/.
func IsDevicePath(p string) bool {
	return len(p) > len(DevicePrefix) && strings.HasPrefix(p, DevicePrefix)
}

// PartitionDevice returns the node a partition appears as: /dev/sda + 1 is
// /dev/sda1, and a disk ending in a digit gets a "p" separator (/dev/nvme0n1p1).
func PartitionDevice(disk string, number int) string {
	sep := ""
	if disk != "" && disk[len(disk)-1] >= '0' && disk[len(disk)-1] <= '9' {
		sep = "p"
	}
	return disk + sep + strconv.Itoa(number)
}

// CryptName is the device-mapper name an encrypted device is opened as.
func CryptName(dev string) string {
	return path.Base(dev) + "_crypt"
}

// CryptDevice is the node an encrypted device is opened at.
func CryptDevice(dev string) string {
	return "/dev/mapper/" + CryptName(dev)
}

// VolumeDevice is the node of a logical volume.
func VolumeDevice(vg, lv string) string {
	return DevicePrefix + vg + "/" + lv
}

// MountDepth counts the components of the cleaned mountpoint. "/" has depth 0.
func MountDepth(mountpoint string) int {
	depth := 0
	for _, part := range strings.Split(path.Clean(mountpoint), "/") {
		if part != "" && part != "." {
			depth++
		}
	}
	return depth
}

// MountFields splits the tokens of a mount entry. Three tokens carry
// options only; four carry a filesystem type before the options.
// The type defaults to "auto".
func MountFields(e Entry) (dev, mountpoint, fstype, options string) {
	dev, mountpoint, fstype = e.Token(0), e.Token(1), "auto"
	switch len(e.Tokens) {
	case 3:
		options = e.Token(2)
	case 4:
		fstype, options = e.Token(2), e.Token(3)
	}
	return dev, mountpoint, fstype, options
}
