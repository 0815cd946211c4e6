package dto

import "github.com/isochrone-map/internal/domain"

// IsochroneRequest - запрос на построение карты изохрон.
// Minutes - список минут через запятую, например "5,10,15,20".
// Lat и Lon - указатели: отсутствующая координата не должна превращаться в 0.
type IsochroneRequest struct {
	Lat     *float64 `json:"lat" form:"lat" query:"lat" validate:"required,min=-90,max=90"`
	Lon     *float64 `json:"lon" form:"lon" query:"lon" validate:"required,min=-180,max=180"`
	Minutes string   `json:"minutes" form:"minutes" query:"minutes" validate:"required,minutes"`
}

func NewIsochroneRequest(lat, lon float64, minutes string) IsochroneRequest {
	return IsochroneRequest{Lat: &lat, Lon: &lon, Minutes: minutes}
}

// Origin - координата запроса; вызывается только после валидации
func (r IsochroneRequest) Origin() domain.Coordinate {
	return domain.Coordinate{Lat: *r.Lat, Lon: *r.Lon}
}
