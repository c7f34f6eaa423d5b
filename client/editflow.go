package client

import (
	"context"
	"fmt"
	"net/http"
)

// CaseEditor drives the case edit dialog: it seeds editable state from the
// current case, lets the operator change estado, prioridad and assignment
// with an optional audit comment, and submits everything as one partial
// update. On failure the seeded state is kept so the operator retries
// without re-entering data.
type CaseEditor struct {
	client *Client
	casoID int64
	open   bool

	Estado           string
	Prioridad        string
	AgenteAsignadoID *int64
	Comentario       string
}

// NewCaseEditor returns an editor bound to the client. Call Open before
// Submit.
func NewCaseEditor(c *Client) *CaseEditor {
	return &CaseEditor{client: c}
}

// Open seeds the editable fields from the case and clears any prior
// comment. No network call is made.
func (e *CaseEditor) Open(caso *Caso) {
	e.casoID = caso.ID
	e.Estado = caso.Estado
	e.Prioridad = caso.Prioridad
	if caso.AgenteAsignadoID != nil {
		id := *caso.AgenteAsignadoID
		e.AgenteAsignadoID = &id
	} else {
		e.AgenteAsignadoID = nil
	}
	e.Comentario = ""
	e.open = true
}

// IsOpen reports whether the editor holds seeded state.
func (e *CaseEditor) IsOpen() bool {
	return e.open
}

// casoEdicion is the exact update body: estado, prioridad and
// agente_asignado_id always travel (null unassigns), comentario only when
// non-empty.
type casoEdicion struct {
	Estado           string `json:"estado"`
	Prioridad        string `json:"prioridad"`
	AgenteAsignadoID *int64 `json:"agente_asignado_id"`
	Comentario       string `json:"comentario,omitempty"`
}

// Submit sends the partial update and, on success, refetches the full case
// so derived fields and the freshly appended history arrive from the
// server. On error the editor stays open with its state untouched.
func (e *CaseEditor) Submit(ctx context.Context) (*CasoDetalle, error) {
	body := casoEdicion{
		Estado:           e.Estado,
		Prioridad:        e.Prioridad,
		AgenteAsignadoID: e.AgenteAsignadoID,
		Comentario:       e.Comentario,
	}

	path := fmt.Sprintf("/casos/%d", e.casoID)
	if err := e.client.do(ctx, http.MethodPut, path, nil, body, nil, false); err != nil {
		return nil, err
	}

	detalle, err := e.client.Casos.Get(ctx, e.casoID)
	if err != nil {
		return nil, err
	}
	e.open = false
	return detalle, nil
}
