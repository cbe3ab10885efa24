package handlers

// AppHandlers содержит все HTTP-хендлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	SchoolHandler       *SchoolHandler
	ActivityHandler     *ActivityHandler
	LeadHandler         *LeadHandler
	ReviewHandler       *ReviewHandler
	NeighborhoodHandler *NeighborhoodHandler
}
