package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Intake flow stages.
type IntakeMode int

const (
	// ModeBusqueda: waiting for an identification to search.
	ModeBusqueda IntakeMode = iota
	// ModeCrearPaciente: no patient matched; collecting new-patient fields
	// with the identification locked.
	ModeCrearPaciente
	// ModeRegistroCaso: patient resolved; collecting case fields.
	ModeRegistroCaso
)

// ValidationError reports a client-side form rejection before any request
// is made. Field names the offending form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var (
	errSinPaciente = errors.New("no hay paciente resuelto")

	cedulaRe  = regexp.MustCompile(`^[0-9]{6,10}$`)
	celularRe = regexp.MustCompile(`^[36][0-9]{9}$`)
	nombreRe  = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñÜü ]+$`)
)

// IntakeFlow resolves a patient by identification, creating it when
// unknown, and then registers or follows up a case for that patient. The
// embedded variant hits the unauthenticated endpoints and defers patient
// creation to the case submission.
type IntakeFlow struct {
	client   *Client
	embedded bool

	Mode           IntakeMode
	Identificacion string
	Paciente       *Paciente
	PendingCasos   []Caso

	// NumeroCasoExistente, when set, turns the submission into a follow-up
	// on that case.
	NumeroCasoExistente string

	// pacienteForm holds collected new-patient fields in the embedded
	// variant until SubmitCase sends them.
	pacienteForm *PacienteForm
}

// NewIntakeFlow starts an authenticated intake.
func NewIntakeFlow(c *Client) *IntakeFlow {
	return &IntakeFlow{client: c}
}

// NewEmbeddedIntake starts an intake for the embedded agent console. No
// bearer token is used.
func NewEmbeddedIntake(c *Client) *IntakeFlow {
	return &IntakeFlow{client: c, embedded: true}
}

// SearchPatient looks the identification up. Zero matches is a normal
// branch: the flow moves to creation mode with the identification locked.
func (f *IntakeFlow) SearchPatient(ctx context.Context, identificacion string) error {
	identificacion = strings.TrimSpace(identificacion)
	if !cedulaRe.MatchString(identificacion) {
		return &ValidationError{Field: "identificacion", Reason: "debe ser numérica, de 6 a 10 dígitos"}
	}

	f.Identificacion = identificacion
	f.Paciente = nil
	f.PendingCasos = nil
	f.NumeroCasoExistente = ""
	f.pacienteForm = nil

	if f.embedded {
		lookup, err := f.client.Embedded.LookupPaciente(ctx, identificacion)
		if err != nil {
			return err
		}
		if !lookup.Found || lookup.Paciente == nil {
			f.Mode = ModeCrearPaciente
			return nil
		}
		f.Paciente = lookup.Paciente
		f.PendingCasos = pendientes(lookup.Casos)
		f.Mode = ModeRegistroCaso
		return nil
	}

	pacientes, err := f.client.Pacientes.List(ctx, ListPacientesParams{Identificacion: identificacion})
	if err != nil {
		return err
	}
	for i := range pacientes {
		if pacientes[i].Identificacion == identificacion {
			f.Paciente = &pacientes[i]
			break
		}
	}
	if f.Paciente == nil {
		f.Mode = ModeCrearPaciente
		return nil
	}

	casos, err := f.client.Pacientes.Casos(ctx, f.Paciente.ID)
	if err != nil {
		return err
	}
	f.PendingCasos = pendientes(casos)
	f.Mode = ModeRegistroCaso
	return nil
}

// pendientes keeps the cases an operator can follow up on.
func pendientes(casos []Caso) []Caso {
	out := make([]Caso, 0, len(casos))
	for _, c := range casos {
		if c.Estado == EstadoAbierto || c.Estado == EstadoEnProceso {
			out = append(out, c)
		}
	}
	return out
}

// CreatePatient validates the collected fields and resolves the patient.
// The identification fixed by SearchPatient overrides whatever the form
// carries. In the embedded variant the fields are held locally and the
// server creates the patient during SubmitCase.
func (f *IntakeFlow) CreatePatient(ctx context.Context, form PacienteForm) error {
	if f.Mode != ModeCrearPaciente {
		return &ValidationError{Field: "identificacion", Reason: "primero busque la identificación"}
	}
	form.Identificacion = f.Identificacion

	if err := validarPaciente(form); err != nil {
		return err
	}

	if f.embedded {
		f.pacienteForm = &form
		f.Mode = ModeRegistroCaso
		return nil
	}

	paciente, err := f.client.Pacientes.Create(ctx, form)
	if err != nil {
		return err
	}
	f.Paciente = paciente
	f.Mode = ModeRegistroCaso
	return nil
}

// validarPaciente mirrors the intake form rules. The server validates
// independently; this only spares a round trip.
func validarPaciente(form PacienteForm) error {
	if !cedulaRe.MatchString(form.Identificacion) {
		return &ValidationError{Field: "identificacion", Reason: "debe ser numérica, de 6 a 10 dígitos"}
	}
	if strings.TrimSpace(form.Nombre) == "" || !nombreRe.MatchString(form.Nombre) {
		return &ValidationError{Field: "nombre", Reason: "solo letras y espacios"}
	}
	if strings.TrimSpace(form.Apellidos) == "" || !nombreRe.MatchString(form.Apellidos) {
		return &ValidationError{Field: "apellidos", Reason: "solo letras y espacios"}
	}
	if !celularRe.MatchString(form.Celular) {
		return &ValidationError{Field: "celular", Reason: "debe tener 10 dígitos y comenzar por 3 o 6"}
	}
	for _, campo := range []struct{ name, value string }{
		{"direccion", form.Direccion},
		{"departamento", form.Departamento},
		{"ciudad", form.Ciudad},
	} {
		if strings.TrimSpace(campo.value) == "" {
			return &ValidationError{Field: campo.name, Reason: "es obligatorio"}
		}
	}
	return nil
}

// SelectPendingCase marks an existing case so the submission becomes a
// follow-up instead of a new case.
func (f *IntakeFlow) SelectPendingCase(numeroCaso string) {
	f.NumeroCasoExistente = numeroCaso
}

// ClearSelection reverts to new-case mode.
func (f *IntakeFlow) ClearSelection() {
	f.NumeroCasoExistente = ""
}

// CaseForm carries the case fields of the intake.
type CaseForm struct {
	MotivoID    int64
	Prioridad   string
	Estado      string
	Descripcion string
	Omnileads   *OmnileadsMetadata
}

// SubmitCase sends the assembled intake and returns the case number the
// operator reads back to the caller.
func (f *IntakeFlow) SubmitCase(ctx context.Context, form CaseForm) (string, error) {
	if f.Mode != ModeRegistroCaso {
		return "", errSinPaciente
	}
	if strings.TrimSpace(form.Descripcion) == "" {
		return "", &ValidationError{Field: "descripcion", Reason: "es obligatoria"}
	}
	if f.NumeroCasoExistente == "" && form.MotivoID <= 0 {
		return "", &ValidationError{Field: "motivo_id", Reason: "es obligatorio"}
	}

	if f.embedded {
		req := EmbeddedCasoRequest{
			Paciente:            f.embeddedPaciente(),
			MotivoID:            form.MotivoID,
			Prioridad:           form.Prioridad,
			Estado:              form.Estado,
			Descripcion:         form.Descripcion,
			NumeroCasoExistente: f.NumeroCasoExistente,
			Omnileads:           form.Omnileads,
		}
		caso, err := f.client.Embedded.SubmitCaso(ctx, req)
		if err != nil {
			return "", err
		}
		return caso.NumeroCaso, nil
	}

	if f.Paciente == nil {
		return "", errSinPaciente
	}
	caso, err := f.client.Casos.Create(ctx, CreateCasoRequest{
		PacienteID:  f.Paciente.ID,
		MotivoID:    form.MotivoID,
		Prioridad:   form.Prioridad,
		Estado:      form.Estado,
		Descripcion: form.Descripcion,
	})
	if err != nil {
		return "", err
	}
	return caso.NumeroCaso, nil
}

// embeddedPaciente returns the patient block of the embedded submission:
// the collected form for a new patient, or the resolved patient's data for
// a known one.
func (f *IntakeFlow) embeddedPaciente() PacienteForm {
	if f.pacienteForm != nil {
		return *f.pacienteForm
	}
	if f.Paciente != nil {
		return PacienteForm{
			Identificacion: f.Paciente.Identificacion,
			Nombre:         f.Paciente.Nombre,
			Apellidos:      f.Paciente.Apellidos,
			Celular:        f.Paciente.Celular,
			Direccion:      f.Paciente.Direccion,
			Departamento:   f.Paciente.Departamento,
			Ciudad:         f.Paciente.Ciudad,
		}
	}
	return PacienteForm{Identificacion: f.Identificacion}
}
