// Package cities resolves free-text city names to redBus location
// identifiers. Static lookups take precedence over the remote SolarSearch
// fallback.
package cities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrCityNotFound is returned when neither the static table nor the remote
// lookup can resolve a city name.
var ErrCityNotFound = errors.New("city not found")

// City is a resolved provider location.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Static table covering the Rápido Ochoa network. Keys are lowercase slugs.
var staticCities = map[string]City{
	"medellin":          {ID: "195160", Name: "Medellin (Ant) (Todos)"},
	"caucasia":          {ID: "195146", Name: "Caucasia (Ant) (Todos)"},
	"jardin":            {ID: "197119", Name: "Jardin (Ant) (Todos)"},
	"arboletes":         {ID: "197095", Name: "Arboletes (Ant) (Todos)"},
	"urrao":             {ID: "197158", Name: "Urrao (Ant) (Todos)"},
	"ciudad bolivar":    {ID: "197104", Name: "Ciudad Bolivar (Ant) (Todos)"},
	"puerto berrio":     {ID: "197141", Name: "Puerto Berrio (Ant) (Todos)"},
	"rionegro":          {ID: "197143", Name: "Rionegro - Marinilla (Ant) (Todos)"},
	"marinilla":         {ID: "197143", Name: "Rionegro - Marinilla (Ant) (Todos)"},
	"betulia":           {ID: "197100", Name: "Betulia (Ant) (Todos)"},
	"andes":             {ID: "197094", Name: "Andes (Ant) (Todos)"},
	"giraldo":           {ID: "197113", Name: "Giraldo (Ant) (Todos)"},
	"yarumal":           {ID: "197162", Name: "Yarumal (Ant) (Todos)"},
	"bolombolo":         {ID: "197101", Name: "Bolombolo (Ant) (Todos)"},
	"concordia":         {ID: "197106", Name: "Concordia (Ant) (Todos)"},
	"taraza":            {ID: "197154", Name: "Taraza (Ant) (Todos)"},
	"caicedo":           {ID: "197102", Name: "Caicedo (Ant) (Todos)"},
	"monteria":          {ID: "195164", Name: "Monteria (Cor) (Todos)"},
	"planeta rica":      {ID: "197138", Name: "Planeta Rica (Cor) (Todos)"},
	"lorica":            {ID: "197127", Name: "Lorica (Cor) (Todos)"},
	"cerete":            {ID: "197103", Name: "Cerete (Cor) (Todos)"},
	"la apartada":       {ID: "197122", Name: "La Apartada (Cor) (Todos)"},
	"chinu":             {ID: "197105", Name: "Chinu (Cor) (Todos)"},
	"san antero":        {ID: "197147", Name: "San Antero (Cor) (Todos)"},
	"sincelejo":         {ID: "195187", Name: "Sincelejo (Suc) (Todos)"},
	"covenas":           {ID: "197107", Name: "Covenas (Suc) (Todos)"},
	"san marcos":        {ID: "197148", Name: "San Marcos (Suc) (Todos)"},
	"tolu":              {ID: "197156", Name: "Tolu (Suc) (Todos)"},
	"sahagun":           {ID: "197145", Name: "Sahagun (Suc) (Todos)"},
	"barranquilla":      {ID: "195179", Name: "Barranquilla (Atl) (Todos)"},
	"quibdo":            {ID: "195175", Name: "Quibdo (Cho) (Todos)"},
	"istmina":           {ID: "197121", Name: "Istmina (Cho) (Todos)"},
	"condoto":           {ID: "197106", Name: "Condoto (Cho) (Todos)"},
	"tutunendo":         {ID: "197157", Name: "Tutunendo (Cho) (Todos)"},
	"santa marta":       {ID: "195189", Name: "Santa Marta (Mag) (Todos)"},
	"santamarta":        {ID: "195189", Name: "Santa Marta (Mag) (Todos)"},
	"cienaga":           {ID: "197104", Name: "Cienaga (Mag) (Todos)"},
	"maicao":            {ID: "197128", Name: "Maicao (Gua) (Todos)"},
	"riohacha":          {ID: "195178", Name: "Riohacha (Gua) (Todos)"},
	"la dorada":         {ID: "197123", Name: "La Dorada (Cal) (Todos)"},
	"cartagena":         {ID: "195181", Name: "Cartagena (Bol) (Todos)"},
	"magangue":          {ID: "197129", Name: "Magangue (Bol) (Todos)"},
	"san onofre":        {ID: "197149", Name: "San Onofre (Bol) (Todos)"},
	"carmen de bolivar": {ID: "197102", Name: "Carmen De Bolivar (Bol) (Todos)"},
	"mompox":            {ID: "197133", Name: "Mompox (Bol) (Todos)"},
	"bogota":            {ID: "195201", Name: "Bogota (D.C) (Todos)"},
}

// Resolver maps free-text city names to redBus location IDs.
type Resolver struct {
	searchURL  string
	httpClient *http.Client
}

// NewResolver creates a resolver with the given SolarSearch endpoint for
// cities outside the static table.
func NewResolver(searchURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		searchURL: searchURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// solarDoc is one location document from the SolarSearch response.
type solarDoc struct {
	ID           json.Number `json:"ID"`
	Name         string      `json:"Name"`
	LocationType string      `json:"locationType"`
}

type solarResponse struct {
	Response struct {
		Docs []solarDoc `json:"docs"`
	} `json:"response"`
}

// Resolve returns the provider location for a city name. The static table
// wins; on a miss the remote lookup runs, preferring CITY-typed documents.
func (r *Resolver) Resolve(ctx context.Context, name string) (City, error) {
	slug := strings.ToLower(strings.TrimSpace(name))
	if city, ok := staticCities[slug]; ok {
		return city, nil
	}

	city, err := r.remoteLookup(ctx, name)
	if err != nil {
		return City{}, fmt.Errorf("%w: %s", ErrCityNotFound, name)
	}
	return city, nil
}

func (r *Resolver) remoteLookup(ctx context.Context, name string) (City, error) {
	u, err := url.Parse(r.searchURL)
	if err != nil {
		return City{}, fmt.Errorf("failed to parse search URL: %w", err)
	}

	q := u.Query()
	q.Set("search", name)
	q.Set("parentLocationId", "195120")
	q.Set("parentId", "195160")
	q.Set("parentLocationType", "CITY")
	q.Set("state", "null")
	q.Set("enableSolrCityId", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return City{}, err
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return City{}, fmt.Errorf("city lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return City{}, fmt.Errorf("city lookup returned status %d", resp.StatusCode)
	}

	var payload solarResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return City{}, fmt.Errorf("failed to decode city lookup response: %w", err)
	}

	docs := payload.Response.Docs
	for _, doc := range docs {
		if doc.LocationType == "CITY" {
			return City{ID: doc.ID.String(), Name: doc.Name}, nil
		}
	}
	if len(docs) > 0 {
		return City{ID: docs[0].ID.String(), Name: docs[0].Name}, nil
	}
	return City{}, errors.New("no matching location documents")
}
