package repository

// Repository groups the stores the services depend on. Instances are
// assembled in main according to the configured store driver.
type Repository struct {
	Catalog     CatalogRepository
	Reservation ReservationRepository
	Session     SessionRepository
}
