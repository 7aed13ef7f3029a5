package redbus

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

type searchResponse struct {
	Inventories []inventory `json:"inventories"`
}

// inventory is one raw bus entry from SearchV4Results.
type inventory struct {
	TravelsName             string      `json:"travelsName"`
	BusType                 string      `json:"busType"`
	ServiceName             string      `json:"serviceName"`
	DepartureTime           string      `json:"departureTime"` // "DD-Mon-YYYY HH:MM:SS"
	ArrivalTime             string      `json:"arrivalTime"`
	JourneyDurationMin      int         `json:"journeyDurationMin"`
	FareList                []float64   `json:"fareList"`
	ConvenienceFee          float64     `json:"convenienceFee"`
	VendorCurrency          string      `json:"vendorCurrency"`
	AvailableSeats          int         `json:"availableSeats"`
	TotalSeats              int         `json:"totalSeats"`
	AvailableWindowSeats    int         `json:"availableWindowSeats"`
	BPData                  []pointData `json:"bpData"`
	DPData                  []pointData `json:"dpData"`
	TotalRatings            float64     `json:"totalRatings"`
	NumberOfReviews         json.Number `json:"numberOfReviews"`
	IsAC                    bool        `json:"isAc"`
	IsSleeper               bool        `json:"isSleeper"`
	IsLiveTrackingAvailable bool        `json:"isLiveTrackingAvailable"`
	IsSoldOut               bool        `json:"isSoldOut"`
}

type pointData struct {
	Name string `json:"Name"`
}

func normalizeInventories(inventories []inventory) []models.Departure {
	departures := make([]models.Departure, 0, len(inventories))
	for _, inv := range inventories {
		departures = append(departures, normalize(inv))
	}
	return departures
}

func normalize(inv inventory) models.Departure {
	var fare, total float64
	if len(inv.FareList) > 0 {
		fare = inv.FareList[0]
		total = fare + inv.ConvenienceFee
	}

	currency := inv.VendorCurrency
	if currency == "" {
		currency = "COP"
	}

	reviews := inv.NumberOfReviews.String()
	if reviews == "" {
		reviews = "0"
	}

	return models.Departure{
		Operator:       orNA(inv.TravelsName),
		BusType:        orNA(inv.BusType),
		Service:        orNA(inv.ServiceName),
		DepartureTime:  timeOfDay(inv.DepartureTime),
		ArrivalTime:    timeOfDay(inv.ArrivalTime),
		DepartureDate:  orNA(inv.DepartureTime),
		ArrivalDate:    orNA(inv.ArrivalTime),
		DurationMin:    inv.JourneyDurationMin,
		DurationHours:  math.Round(float64(inv.JourneyDurationMin)/60*10) / 10,
		Fare:           fare,
		ConvenienceFee: inv.ConvenienceFee,
		TotalPrice:     total,
		Currency:       currency,
		SeatsAvailable: inv.AvailableSeats,
		SeatsTotal:     inv.TotalSeats,
		WindowSeats:    inv.AvailableWindowSeats,
		BoardingPoint:  firstPointName(inv.BPData),
		DroppingPoint:  firstPointName(inv.DPData),
		Rating:         inv.TotalRatings,
		NumReviews:     reviews,
		IsAC:           inv.IsAC,
		IsSleeper:      inv.IsSleeper,
		HasTracking:    inv.IsLiveTrackingAvailable,
		SoldOut:        inv.IsSoldOut,
	}
}

// timeOfDay extracts "HH:MM:SS" from a "DD-Mon-YYYY HH:MM:SS" timestamp.
func timeOfDay(stamp string) string {
	parts := strings.SplitN(stamp, " ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return "N/A"
}

func firstPointName(points []pointData) string {
	if len(points) > 0 && points[0].Name != "" {
		return points[0].Name
	}
	return "N/A"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
