package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedRequestFixture() EmbeddedCasoRequest {
	return EmbeddedCasoRequest{
		Paciente: EmbeddedPaciente{
			Identificacion: "1234567890",
			Nombre:         "Ana",
			Apellidos:      "Ruiz",
			Celular:        "3001234567",
			Direccion:      "Calle 1 # 2-3",
			Departamento:   "Antioquia",
			Ciudad:         "Medellín",
		},
		MotivoID:    2,
		Descripcion: "Retraso en entrega",
	}
}

func TestEmbeddedCasoRequestValidate(t *testing.T) {
	req := embeddedRequestFixture()
	require.NoError(t, req.Validate())
	assert.Equal(t, PrioridadMedia, req.Prioridad)
	assert.Equal(t, EstadoAbierto, req.Estado)
}

func TestEmbeddedCasoRequestRequiresMotivoForNewCaso(t *testing.T) {
	req := embeddedRequestFixture()
	req.MotivoID = 0

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "motivo_id")
}

func TestEmbeddedCasoRequestFollowUpSkipsMotivo(t *testing.T) {
	req := embeddedRequestFixture()
	req.MotivoID = 0
	req.NumeroCasoExistente = "PQR-20260820-0001"

	require.NoError(t, req.Validate())
}
