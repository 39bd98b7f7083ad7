package response_models

type TripResponse struct {
	ID          string `json:"id"`
	GroupID     string `json:"group_id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Active      bool   `json:"active"`
}

type FlightResponse struct {
	ID               string  `json:"id"`
	Airline          string  `json:"airline"`
	DepartureAirport string  `json:"departure_airport"`
	ArrivalAirport   string  `json:"arrival_airport"`
	DepartureTime    string  `json:"departure_time,omitempty"`
	ArrivalTime      string  `json:"arrival_time,omitempty"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	CabinClass       string  `json:"cabin_class,omitempty"`
	Stops            int     `json:"stops"`
}

type HotelResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"price_per_night"`
	Currency      string  `json:"currency"`
	RoomType      string  `json:"room_type,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	Amenities     string  `json:"amenities,omitempty"`
}

type ItineraryEntryResponse struct {
	ID            string `json:"id"`
	Day           string `json:"day"`
	Activity      string `json:"activity"`
	Location      string `json:"location"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	EstimatedCost string `json:"estimated_cost,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type TripDetailResponse struct {
	Trip      TripResponse             `json:"trip"`
	Flights   []FlightResponse         `json:"flights"`
	Hotels    []HotelResponse          `json:"hotels"`
	Itinerary []ItineraryEntryResponse `json:"itinerary"`
}
