package virtual

import "github.com/mj1618/a11y-conform/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Name:     "virtual",
			Launcher: Launcher{},
		}, nil
	}
}
