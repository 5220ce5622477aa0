package ports

// DeviceProber inspects the host when environment checks are requested.
//
//go:generate mockgen -source=prober.go -destination=mocks/mock_prober.go -package=mocks
type DeviceProber interface {
	// Exists reports whether path exists. Errors other than "not found" are returned as is.
	Exists(path string) (bool, error)

	// IsBlockDevice reports whether path is a block device.
	IsBlockDevice(path string) (bool, error)
}

// OwnerLookup resolves the owner of a file.
type OwnerLookup interface {
	// Owner returns the numeric user ID owning path.
	Owner(path string) (uint32, error)
}
