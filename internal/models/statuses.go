package models

type UserRole string
type LeadStatus string
type ActivitySource string
type ActivityCategory string

const (
	UserRoleParent UserRole = "parent"
	UserRoleSchool UserRole = "school"
	UserRoleAdmin  UserRole = "admin"

	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusClosed    LeadStatus = "closed"

	ActivitySourceSchool  ActivitySource = "school"
	ActivitySourceParent  ActivitySource = "parent"
	ActivitySourceScraped ActivitySource = "scraped"

	CategorySports    ActivityCategory = "sports"
	CategoryArts      ActivityCategory = "arts"
	CategoryMusic     ActivityCategory = "music"
	CategoryDance     ActivityCategory = "dance"
	CategoryLanguages ActivityCategory = "languages"
	CategoryScience   ActivityCategory = "science"
	CategoryOther     ActivityCategory = "other"
)

// Допустимые границы возраста занятий
const (
	ActivityAgeFloor   = 3
	ActivityAgeCeiling = 18
)
