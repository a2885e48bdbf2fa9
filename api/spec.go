package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed api.yaml
var specYAML []byte

var (
	specOnce sync.Once
	spec     *openapi3.T
	specErr  error
)

// Spec returns the parsed and validated API document.
func Spec() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(specYAML)
		if err != nil {
			specErr = fmt.Errorf("failed to load api document: %w", err)
			return
		}

		err = doc.Validate(loader.Context)
		if err != nil {
			specErr = fmt.Errorf("invalid api document: %w", err)
			return
		}

		spec = doc
	})

	return spec, specErr
}
