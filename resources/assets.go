package resources

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"fyne.io/fyne/v2"
)

const logoDir = "logo/"

// Logo file names.
const (
	LogoIdle   = "deepwork.svg"
	LogoActive = "deepwork_active.svg"
)

//go:embed logo/*.svg
var logoFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(fs embed.FS, resourcePath string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(resourcePath); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(resourcePath)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", resourcePath, err)
	}

	resource := fyne.NewStaticResource(path.Base(resourcePath), data)
	cache.Store(resourcePath, resource)
	return resource, nil
}
