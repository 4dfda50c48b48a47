package request

type CreateReservationRequest struct {
	MovieID  string   `json:"movie_id" validate:"required,uuid"`
	Showtime string   `json:"showtime" validate:"required"`
	Seats    []string `json:"seats" validate:"required,min=1,dive,required"`
	Adults   int      `json:"adults" validate:"min=0"`
	Teens    int      `json:"teens" validate:"min=0"`
	Children int      `json:"children" validate:"min=0"`
}

type PayRequest struct {
	Method string `json:"method" validate:"required,oneof=card cash"`
}
