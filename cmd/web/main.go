// @title           kidhub API
// @version         1.0
// @description     Marketplace of children's activities: schools, activities, leads and reviews.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "kidhub_backend/internal/app"

func main() {
	app.Run()
}
