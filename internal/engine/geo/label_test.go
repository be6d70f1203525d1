package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name   string
		result nominatimResult
		want   string
	}{
		{
			name: "full structured address",
			result: nominatimResult{
				Address: nominatimAddress{
					Road:        "Rua Barão de Jaguara",
					HouseNumber: "1000",
					Suburb:      "Centro",
					City:        "Campinas",
				},
			},
			want: "Rua Barão de Jaguara, 1000, Centro - Campinas",
		},
		{
			name: "neighbourhood and town stand in for suburb and city",
			result: nominatimResult{
				Address: nominatimAddress{
					Road:          "Rua das Flores",
					Neighbourhood: "Jardim Paulista",
					Town:          "Valinhos",
				},
			},
			want: "Rua das Flores, Jardim Paulista - Valinhos",
		},
		{
			name: "municipality is the last city fallback",
			result: nominatimResult{
				Address: nominatimAddress{
					Road:         "Estrada Velha",
					Municipality: "Indaiatuba",
				},
			},
			want: "Estrada Velha - Indaiatuba",
		},
		{
			name: "no road falls back to display name",
			result: nominatimResult{
				DisplayName: "Parque Taquaral, Campinas, São Paulo, Brasil",
				Address:     nominatimAddress{City: "Campinas"},
			},
			want: "Parque Taquaral, Campinas",
		},
		{
			name: "short label falls back to display name",
			result: nominatimResult{
				DisplayName: "SP, Brasil",
				Address:     nominatimAddress{Road: "SP"},
			},
			want: "SP, Brasil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayLabel(tt.result))
		})
	}
}

func TestRawLabel(t *testing.T) {
	assert.Equal(t, "Rua A, Centro", rawLabel("Rua A, Centro, Campinas, Brasil"))
	assert.Equal(t, "Campinas", rawLabel("  Campinas  "))
	assert.Equal(t, "", rawLabel(""))
}
