package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the platform backends for the current build.
type Provider struct {
	Name     string
	Launcher Launcher
}

// ErrUnsupported is returned when no accessibility backend is linked into the binary.
var ErrUnsupported = fmt.Errorf("no accessibility backend registered for %s/%s", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by backend packages via init().
// See internal/platform/virtual/init.go for the reference registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns the registered Provider.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
