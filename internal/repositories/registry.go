package repositories

// RepositoryContainer содержит все репозитории приложения.
type RepositoryContainer struct {
	UserRepo         UserRepository
	RefreshTokenRepo RefreshTokenRepository
	SchoolRepo       SchoolRepository
	ActivityRepo     ActivityRepository
	LeadRepo         LeadRepository
	ReviewRepo       ReviewRepository
	NeighborhoodRepo NeighborhoodRepository
}

func NewRepositoryContainer() *RepositoryContainer {
	return &RepositoryContainer{
		UserRepo:         NewUserRepository(),
		RefreshTokenRepo: NewRefreshTokenRepository(),
		SchoolRepo:       NewSchoolRepository(),
		ActivityRepo:     NewActivityRepository(),
		LeadRepo:         NewLeadRepository(),
		ReviewRepo:       NewReviewRepository(),
		NeighborhoodRepo: NewNeighborhoodRepository(),
	}
}
