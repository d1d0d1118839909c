package swaggerkit

import "net/http"

// docReader is a seam so tests can inject a different spec body
var docReader = func() string { return apiSpec }

// serveDocJSON serves the OpenAPI document for the analytics API
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}

// apiSpec is maintained by hand, it covers the small read surface of the service
const apiSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "gitpulse API", "version": "1.0.0"},
  "servers": [{"url": "/api/v1"}],
  "paths": {
    "/load": {
      "post": {
        "summary": "Load staged event batches into Postgres",
        "responses": {
          "200": {"description": "Load report with per-batch outcomes"}
        }
      }
    },
    "/ingest": {
      "post": {
        "summary": "Fetch public GitHub events and stage them as JSONL batches",
        "responses": {
          "202": {"description": "Ingest started"}
        }
      }
    },
    "/ingest/run": {
      "post": {
        "summary": "Fetch with per-run page overrides",
        "requestBody": {
          "content": {"application/json": {"schema": {
            "type": "object",
            "properties": {
              "pages": {"type": "integer", "minimum": 1, "maximum": 10},
              "per_page": {"type": "integer", "minimum": 1, "maximum": 100}
            }
          }}}
        },
        "responses": {
          "202": {"description": "Ingest started"},
          "400": {"description": "Malformed or invalid body"}
        }
      }
    },
    "/meta/health": {
      "get": {
        "summary": "Health check",
        "responses": {"200": {"description": "Service is up"}}
      }
    },
    "/meta/ready": {
      "get": {
        "summary": "Readiness probe with dependency checks",
        "responses": {"200": {"description": "Dependency check summary"}}
      }
    },
    "/top-repos": {
      "get": {
        "summary": "Most active repositories in a trailing window",
        "parameters": [
          {"name": "days", "in": "query", "schema": {"type": "integer", "minimum": 1}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1}}
        ],
        "responses": {
          "200": {"description": "Ranked repository activity"},
          "422": {"description": "Non-positive days or limit"}
        }
      }
    },
    "/user-sessions": {
      "get": {
        "summary": "Per-actor activity sessions split on inactivity gaps",
        "parameters": [
          {"name": "days", "in": "query", "schema": {"type": "integer", "minimum": 1}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1}}
        ],
        "responses": {
          "200": {"description": "Sessions ending inside the window"},
          "422": {"description": "Non-positive days or limit"}
        }
      }
    }
  }
}`
