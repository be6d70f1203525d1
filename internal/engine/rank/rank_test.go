package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazsp/lifefinder/internal/model"
)

var origin = model.ResolvedLocation{Lat: -23.5505, Lng: -46.6333, Label: "Sé - São Paulo"}

func group(name, category, weekday, mode string, lat, lng float64) model.Group {
	return model.Group{
		Name:      name,
		Category:  category,
		Weekday:   weekday,
		Mode:      mode,
		Lat:       lat,
		Lng:       lng,
		HasCoords: lat != 0 || lng != 0,
	}
}

func allFilters() model.Filters {
	return model.Filters{
		Categories: []string{"Jovens", "Casais"},
		Weekdays:   []string{"Terça", "Quinta"},
		Modes:      []string{"Presencial", "Online"},
	}
}

func TestFilterAndRankOrdersByDistance(t *testing.T) {
	groups := []model.Group{
		group("Longe", "Jovens", "Terça", "Presencial", -22.9056, -47.0608),  // Campinas
		group("Perto", "Jovens", "Terça", "Presencial", -23.5615, -46.6562),  // Paulista
		group("Médio", "Casais", "Quinta", "Presencial", -23.6821, -46.6755), // Santo Amaro
	}

	inPerson, online := FilterAndRank(groups, allFilters(), origin)

	require.Len(t, inPerson, 3)
	assert.Empty(t, online)
	assert.Equal(t, "Perto", inPerson[0].Name)
	assert.Equal(t, "Médio", inPerson[1].Name)
	assert.Equal(t, "Longe", inPerson[2].Name)
	for i := 1; i < len(inPerson); i++ {
		assert.LessOrEqual(t, inPerson[i-1].DistanceKm, inPerson[i].DistanceKm)
	}
}

func TestFilterAndRankSplitsOnlineGroups(t *testing.T) {
	groups := []model.Group{
		group("Presencial A", "Jovens", "Terça", "Presencial", -23.56, -46.65),
		group("Virtual B", "Jovens", "Terça", "Online", 0, 0),
		group("Virtual C", "Casais", "Quinta", "online pelo Zoom", 0, 0),
	}

	inPerson, online := FilterAndRank(groups, model.Filters{
		Categories: []string{"Jovens", "Casais"},
		Weekdays:   []string{"Terça", "Quinta"},
		Modes:      []string{"Presencial", "Online", "online pelo Zoom"},
	}, origin)

	require.Len(t, inPerson, 1)
	require.Len(t, online, 2)
	assert.Equal(t, "Virtual B", online[0].Name)
	assert.Equal(t, "Virtual C", online[1].Name)
}

func TestFilterAndRankRequiresMembershipInEverySet(t *testing.T) {
	groups := []model.Group{
		group("Certo", "Jovens", "Terça", "Presencial", -23.56, -46.65),
		group("Categoria errada", "Mulheres", "Terça", "Presencial", -23.56, -46.65),
		group("Dia errado", "Jovens", "Sábado", "Presencial", -23.56, -46.65),
		group("Modo errado", "Jovens", "Terça", "Híbrido", -23.56, -46.65),
	}

	inPerson, online := FilterAndRank(groups, allFilters(), origin)

	assert.Empty(t, online)
	require.Len(t, inPerson, 1)
	assert.Equal(t, "Certo", inPerson[0].Name)
}

func TestFilterAndRankEmptyFilterSetMatchesNothing(t *testing.T) {
	groups := []model.Group{
		group("Qualquer", "Jovens", "Terça", "Presencial", -23.56, -46.65),
	}

	inPerson, online := FilterAndRank(groups, model.Filters{
		Categories: nil,
		Weekdays:   []string{"Terça"},
		Modes:      []string{"Presencial"},
	}, origin)

	assert.Empty(t, inPerson)
	assert.Empty(t, online)
}

func TestFilterAndRankEmptyCatalog(t *testing.T) {
	inPerson, online := FilterAndRank(nil, allFilters(), origin)
	assert.Empty(t, inPerson)
	assert.Empty(t, online)
}

func TestFilterAndRankTiesKeepCatalogOrder(t *testing.T) {
	same := func(name string) model.Group {
		return group(name, "Jovens", "Terça", "Presencial", -23.56, -46.65)
	}
	groups := []model.Group{same("Primeiro"), same("Segundo"), same("Terceiro")}

	inPerson, _ := FilterAndRank(groups, allFilters(), origin)

	require.Len(t, inPerson, 3)
	assert.Equal(t, "Primeiro", inPerson[0].Name)
	assert.Equal(t, "Segundo", inPerson[1].Name)
	assert.Equal(t, "Terceiro", inPerson[2].Name)
}
