// Package web holds the registration page template.
package web

import (
	"embed"
	"html/template"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate is the name of the registration page template
const IndexTemplate = "index.html"

// Asset paths under /static, produced by `make wasm`
const (
	WasmExecPath = "/static/wasm_exec.js"
	LoaderPath   = "/static/loader.js"
	WasmPath     = "/static/cadastro.wasm"
)

// PageData is rendered into the registration page
type PageData struct {
	Title    string
	Sistemas []models.Sistema
	WasmExec string
	Loader   string
	Wasm     string
}

// NewPageData fills the asset paths for the given catalogue
func NewPageData(sistemas []models.Sistema) PageData {
	return PageData{
		Title:    "Cadastro de Funcionário",
		Sistemas: sistemas,
		WasmExec: WasmExecPath,
		Loader:   LoaderPath,
		Wasm:     WasmPath,
	}
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
