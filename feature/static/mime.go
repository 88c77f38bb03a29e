package static

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// chartTypes covers map and chart assets the generic table gets wrong or lacks.
var chartTypes = map[string]string{
	".shp":      "application/x-esri-shape",
	".shx":      "application/x-esri-shape-index",
	".dbf":      "application/x-dbf",
	".prj":      "text/plain; charset=utf-8",
	".cpg":      "text/plain; charset=utf-8",
	".geojson":  "application/geo+json",
	".topojson": "application/json",
	".svg":      "image/svg+xml",
	".js":       "text/javascript; charset=utf-8",
	".mjs":      "text/javascript; charset=utf-8",
	".jsx":      "text/javascript; charset=utf-8",
	".csv":      "text/csv; charset=utf-8",
	".wasm":     "application/wasm",
}

// ContentType returns the Content-Type for a file name based on its extension.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return fiber.MIMEOctetStream
	}
	if ct, ok := chartTypes[ext]; ok {
		return ct
	}
	return utils.GetMIME(ext)
}
