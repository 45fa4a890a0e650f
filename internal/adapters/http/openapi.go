package http

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var specFS embed.FS

var (
	specJSON     []byte
	specJSONOnce sync.Once
	specJSONErr  error
)

// getOpenAPIJSON returns the API description as JSON. The embedded
// YAML is converted once and cached for the life of the process.
func getOpenAPIJSON() ([]byte, error) {
	specJSONOnce.Do(func() {
		specJSON, specJSONErr = renderSpecJSON()
	})
	return specJSON, specJSONErr
}

func renderSpecJSON() ([]byte, error) {
	raw, err := specFS.ReadFile("openapi.yaml")
	if err != nil {
		return nil, err
	}

	// yaml.v3 decodes mappings as map[string]interface{}, which
	// marshals to JSON directly.
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing openapi.yaml: %w", err)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// swaggerUIHTML serves Swagger UI from a CDN, pointed at /openapi.json.
const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Metes API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.json",
      dom_id: "#swagger-ui",
    });
  </script>
</body>
</html>`

// handleSwaggerUI serves the interactive API documentation page.
func (s *Server) handleSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(swaggerUIHTML))
}
