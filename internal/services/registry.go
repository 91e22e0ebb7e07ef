package services

// ServiceContainer bundles the service layer for wiring in app setup.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	JobService          JobService
	ApplicationService  ApplicationService
	RatingService       RatingService
	NotificationService NotificationService
}
