package cities

import "sort"

// CatalogueEntry is one city in the public catalogue served by the HTTP
// layer. The slug is the key accepted by Resolve.
type CatalogueEntry struct {
	Name       string `json:"nombre"`
	Department string `json:"departamento"`
	Slug       string `json:"slug"`
}

var catalogue = []CatalogueEntry{
	{Name: "Medellín", Department: "Antioquia", Slug: "medellin"},
	{Name: "Caucasia", Department: "Antioquia", Slug: "caucasia"},
	{Name: "Jardín", Department: "Antioquia", Slug: "jardin"},
	{Name: "Arboletes", Department: "Antioquia", Slug: "arboletes"},
	{Name: "Urrao", Department: "Antioquia", Slug: "urrao"},
	{Name: "Ciudad Bolívar", Department: "Antioquia", Slug: "ciudad bolivar"},
	{Name: "Puerto Berrío", Department: "Antioquia", Slug: "puerto berrio"},
	{Name: "Rionegro - Marinilla", Department: "Antioquia", Slug: "rionegro"},
	{Name: "Betulia", Department: "Antioquia", Slug: "betulia"},
	{Name: "Andes", Department: "Antioquia", Slug: "andes"},
	{Name: "Giraldo", Department: "Antioquia", Slug: "giraldo"},
	{Name: "Yarumal", Department: "Antioquia", Slug: "yarumal"},
	{Name: "Bolombolo", Department: "Antioquia", Slug: "bolombolo"},
	{Name: "Concordia", Department: "Antioquia", Slug: "concordia"},
	{Name: "Tarazá", Department: "Antioquia", Slug: "taraza"},
	{Name: "Caicedo", Department: "Antioquia", Slug: "caicedo"},
	{Name: "Barranquilla", Department: "Atlántico", Slug: "barranquilla"},
	{Name: "Cartagena", Department: "Bolívar", Slug: "cartagena"},
	{Name: "Magangué", Department: "Bolívar", Slug: "magangue"},
	{Name: "San Onofre", Department: "Bolívar", Slug: "san onofre"},
	{Name: "Carmen de Bolívar", Department: "Bolívar", Slug: "carmen de bolivar"},
	{Name: "Mompox", Department: "Bolívar", Slug: "mompox"},
	{Name: "La Dorada", Department: "Caldas", Slug: "la dorada"},
	{Name: "Quibdó", Department: "Chocó", Slug: "quibdo"},
	{Name: "Istmina", Department: "Chocó", Slug: "istmina"},
	{Name: "Condoto", Department: "Chocó", Slug: "condoto"},
	{Name: "Tutunendo", Department: "Chocó", Slug: "tutunendo"},
	{Name: "Montería", Department: "Córdoba", Slug: "monteria"},
	{Name: "Planeta Rica", Department: "Córdoba", Slug: "planeta rica"},
	{Name: "Lorica", Department: "Córdoba", Slug: "lorica"},
	{Name: "Cereté", Department: "Córdoba", Slug: "cerete"},
	{Name: "La Apartada", Department: "Córdoba", Slug: "la apartada"},
	{Name: "Chinú", Department: "Córdoba", Slug: "chinu"},
	{Name: "San Antero", Department: "Córdoba", Slug: "san antero"},
	{Name: "Bogotá", Department: "Cundinamarca", Slug: "bogota"},
	{Name: "Maicao", Department: "La Guajira", Slug: "maicao"},
	{Name: "Riohacha", Department: "La Guajira", Slug: "riohacha"},
	{Name: "Santa Marta", Department: "Magdalena", Slug: "santa marta"},
	{Name: "Ciénaga", Department: "Magdalena", Slug: "cienaga"},
	{Name: "Sincelejo", Department: "Sucre", Slug: "sincelejo"},
	{Name: "Coveñas", Department: "Sucre", Slug: "covenas"},
	{Name: "San Marcos", Department: "Sucre", Slug: "san marcos"},
	{Name: "Tolú", Department: "Sucre", Slug: "tolu"},
	{Name: "Sahagún", Department: "Sucre", Slug: "sahagun"},
}

// Catalogue returns the served cities sorted by display name.
func Catalogue() []CatalogueEntry {
	out := make([]CatalogueEntry, len(catalogue))
	copy(out, catalogue)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// GroupByDepartment buckets the catalogue by departamento for the city
// listing endpoint.
func GroupByDepartment(entries []CatalogueEntry) map[string][]CatalogueEntry {
	groups := make(map[string][]CatalogueEntry)
	for _, e := range entries {
		groups[e.Department] = append(groups[e.Department], CatalogueEntry{
			Name: e.Name,
			Slug: e.Slug,
		})
	}
	return groups
}
