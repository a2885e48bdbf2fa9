package app

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/popcorn-palace/internal/jsonutil"
	"github.com/oapi-codegen/runtime"
)

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

// bindPathParam decodes the chi URL parameter name into dst, unescaping it
// first.
func bindPathParam(r *http.Request, name string, dst any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dst, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return fmt.Errorf("invalid format for parameter %s", name)
	}

	return nil
}

func bindQueryParam(r *http.Request, name string, dst any) error {
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst)
	if err != nil {
		return fmt.Errorf("invalid format for parameter %s", name)
	}

	return nil
}
