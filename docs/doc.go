// Package docs provides generated OpenAPI documentation.
//
// Berge API
//
//	@title			Berge API
//	@version		1.0
//	@description	Literary curation API for river-walk explorations: typographic previews, Livre Vivant sessions and document exports.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/berge-project/berge
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8585
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/berge/serve.go -o ./swagger --parseDependency --parseInternal
