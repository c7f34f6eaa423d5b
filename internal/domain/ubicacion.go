package domain

// Departamento división administrativa de Colombia.
type Departamento struct {
	ID     int64   `json:"id" db:"id"`
	Nombre string  `json:"nombre" db:"nombre"`
	Codigo *string `json:"codigo" db:"codigo"`
}

// Ciudad municipio perteneciente a un departamento.
type Ciudad struct {
	ID             int64  `json:"id" db:"id"`
	Nombre         string `json:"nombre" db:"nombre"`
	DepartamentoID int64  `json:"departamento_id" db:"departamento_id"`
}
