// Package storefrontcatalog is the product catalog backend of the storefront.
//
// Project layout:
//
//	cmd/server             HTTP entry point
//	internal/config        environment configuration
//	internal/database      connection, migrations, demo seed, test databases
//	internal/models        gorm models with their write-time checks
//	internal/ordering      per-parent order numbering for lines and images
//	internal/categorytree  in-memory category forest
//	internal/presenter     public JSON projections
//	internal/services      catalog operations
//	internal/handlers      gin handlers
//	internal/middleware    CORS, language, request and audit logging
//	internal/router        route table
//	internal/i18n          message catalogs
//	internal/utils         response envelope and validation
package storefrontcatalog
