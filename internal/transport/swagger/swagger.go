package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// specURL is where the router serves the OpenAPI document from disk.
const specURL = "/openapi.yml"

func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(specURL),
	)
}
