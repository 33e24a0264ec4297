package dhl

type ApiResponse struct {
	Shipments []Shipment `json:"shipments"`
}

type Shipment struct {
	ID      string  `json:"id"`
	Service string  `json:"service"`
	Status  Event   `json:"status"`
	Events  []Event `json:"events"`
}

type Event struct {
	Timestamp   string   `json:"timestamp"`
	Location    Location `json:"location"`
	StatusCode  string   `json:"statusCode"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
}

type Location struct {
	Address Address `json:"address"`
}

type Address struct {
	CountryCode     string `json:"countryCode"`
	PostalCode      string `json:"postalCode"`
	AddressLocality string `json:"addressLocality"`
}

type ProblemResponse struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}
