package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

const comentarioCasoEmbebido = "Caso creado desde vista embebida"

// EmbeddedService backs the unauthenticated intake view running inside the
// telephony platform. Every submission records the call interaction, whether
// it creates a fresh caso or updates an existing one.
type EmbeddedService struct {
	casos           *CasoService
	casoRepo        *repo.CasoRepo
	pacienteRepo    *repo.PacienteRepo
	usuarioRepo     *repo.UsuarioRepo
	interaccionRepo *repo.InteraccionRepo
	alertaRepo      *repo.AlertaRepo
	log             *logger.Logger
}

func NewEmbeddedService(
	casos *CasoService,
	casoRepo *repo.CasoRepo,
	pacienteRepo *repo.PacienteRepo,
	usuarioRepo *repo.UsuarioRepo,
	interaccionRepo *repo.InteraccionRepo,
	alertaRepo *repo.AlertaRepo,
	log *logger.Logger,
) *EmbeddedService {
	return &EmbeddedService{
		casos:           casos,
		casoRepo:        casoRepo,
		pacienteRepo:    pacienteRepo,
		usuarioRepo:     usuarioRepo,
		interaccionRepo: interaccionRepo,
		alertaRepo:      alertaRepo,
		log:             log,
	}
}

// LookupPaciente resolves a paciente by cedula for the intake form. A missing
// paciente is not an error: the view switches to creation mode.
func (s *EmbeddedService) LookupPaciente(ctx context.Context, identificacion string) (*domain.EmbeddedPacienteLookup, error) {
	paciente, err := s.pacienteRepo.GetByIdentificacion(ctx, identificacion)
	if err != nil {
		if errors.Is(err, repo.ErrPacienteNotFound) {
			return &domain.EmbeddedPacienteLookup{Found: false, Casos: []domain.Caso{}}, nil
		}
		return nil, err
	}

	casos, err := s.casoRepo.ListByPaciente(ctx, paciente.ID)
	if err != nil {
		return nil, err
	}

	return &domain.EmbeddedPacienteLookup{Found: true, Paciente: paciente, Casos: casos}, nil
}

// HistorialPaciente returns a paciente and their full case history
func (s *EmbeddedService) HistorialPaciente(ctx context.Context, identificacion string) (*domain.EmbeddedHistorial, error) {
	paciente, err := s.pacienteRepo.GetByIdentificacion(ctx, identificacion)
	if err != nil {
		return nil, err
	}

	casos, err := s.casoRepo.ListByPaciente(ctx, paciente.ID)
	if err != nil {
		return nil, err
	}

	return &domain.EmbeddedHistorial{Paciente: paciente, Casos: casos}, nil
}

// SubmitCaso processes an intake submission. The paciente is created when the
// cedula is unknown. With numero_caso_existente the submission updates that
// caso instead of creating a new one. The call interaction is recorded in
// both paths.
func (s *EmbeddedService) SubmitCaso(ctx context.Context, req *domain.EmbeddedCasoRequest) (*domain.Caso, error) {
	paciente, err := s.findOrCreatePaciente(ctx, &req.Paciente)
	if err != nil {
		return nil, err
	}

	var caso *domain.Caso
	if req.NumeroCasoExistente != "" {
		caso, err = s.actualizarExistente(ctx, req)
	} else {
		caso, err = s.crearNuevo(ctx, req, paciente)
	}
	if err != nil {
		return nil, err
	}

	s.registrarLlamada(ctx, caso, req)

	return caso, nil
}

func (s *EmbeddedService) findOrCreatePaciente(ctx context.Context, datos *domain.EmbeddedPaciente) (*domain.Paciente, error) {
	paciente, err := s.pacienteRepo.GetByIdentificacion(ctx, datos.Identificacion)
	if err == nil {
		return paciente, nil
	}
	if !errors.Is(err, repo.ErrPacienteNotFound) {
		return nil, err
	}

	paciente, err = s.pacienteRepo.Create(ctx, &domain.CreatePacienteRequest{
		Identificacion: datos.Identificacion,
		Nombre:         datos.Nombre,
		Apellidos:      datos.Apellidos,
		Celular:        datos.Celular,
		Direccion:      datos.Direccion,
		Departamento:   datos.Departamento,
		Ciudad:         datos.Ciudad,
	}, nil)
	if err != nil {
		// Concurrent submissions for the same cedula race on creation
		if errors.Is(err, repo.ErrPacienteDuplicado) {
			return s.pacienteRepo.GetByIdentificacion(ctx, datos.Identificacion)
		}
		return nil, err
	}

	s.log.Info(ctx, "paciente created from embedded view",
		logger.Module("embedded"), logger.Action("submit_caso"),
		zap.Int64("paciente_id", paciente.ID))

	return paciente, nil
}

func (s *EmbeddedService) actualizarExistente(ctx context.Context, req *domain.EmbeddedCasoRequest) (*domain.Caso, error) {
	anterior, err := s.casoRepo.GetByNumeroCaso(ctx, req.NumeroCasoExistente)
	if err != nil {
		return nil, err
	}

	params := repo.UpdateCasoParams{
		Estado:      &req.Estado,
		Prioridad:   &req.Prioridad,
		Descripcion: &req.Descripcion,
	}
	if req.Estado == domain.EstadoCerrado && anterior.FechaCierre == nil {
		cierre := time.Now().UTC()
		horas := cierre.Sub(anterior.FechaCreacion).Hours()
		params.FechaCierre = &cierre
		params.TiempoResolucionHoras = &horas
	}

	caso, err := s.casoRepo.Update(ctx, anterior.ID, params)
	if err != nil {
		return nil, err
	}

	if anterior.Estado != caso.Estado {
		estadoAnterior := string(anterior.Estado)
		estadoNuevo := string(caso.Estado)
		if err := s.casoRepo.AddHistorialEstado(ctx, caso.ID, &estadoAnterior, estadoNuevo, nil, nil); err != nil {
			s.log.Error(ctx, "failed to add historial_estado",
				logger.Module("embedded"), logger.Action("submit_caso"),
				zap.Int64("caso_id", caso.ID), zap.Error(err))
		}
		if err := s.casoRepo.AddEvento(ctx, caso.ID, domain.EventoCambioEstado, &estadoAnterior, &estadoNuevo, nil, nil); err != nil {
			s.log.Error(ctx, "failed to add evento",
				logger.Module("embedded"), logger.Action("submit_caso"),
				zap.Int64("caso_id", caso.ID), zap.Error(err))
		}
	}

	s.log.Info(ctx, "caso updated from embedded view",
		logger.Module("embedded"), logger.Action("submit_caso"),
		zap.Int64("caso_id", caso.ID),
		zap.String("numero_caso", caso.NumeroCaso))

	return caso, nil
}

func (s *EmbeddedService) crearNuevo(ctx context.Context, req *domain.EmbeddedCasoRequest, paciente *domain.Paciente) (*domain.Caso, error) {
	agente, err := s.usuarioRepo.FirstActiveAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve default agente: %w", err)
	}

	numero, err := s.casos.GenerarNumeroCaso(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate numero_caso: %w", err)
	}

	caso, err := s.casoRepo.Create(ctx, repo.CreateCasoParams{
		NumeroCaso:       numero,
		PacienteID:       paciente.ID,
		MotivoID:         req.MotivoID,
		Prioridad:        req.Prioridad,
		Estado:           req.Estado,
		Origen:           domain.OrigenCall,
		Descripcion:      req.Descripcion,
		AgenteCreadorID:  agente.ID,
		AgenteAsignadoID: &agente.ID,
	})
	if err != nil {
		return nil, err
	}

	s.casos.registrarCreacion(ctx, caso, nil, comentarioCasoEmbebido)

	if caso.Prioridad == domain.PrioridadAlta {
		if _, err := s.alertaRepo.Create(ctx, caso.ID, domain.AlertaPrioridadAlta); err != nil {
			s.log.Error(ctx, "failed to create high priority alerta",
				logger.Module("embedded"), logger.Action("submit_caso"),
				zap.Int64("caso_id", caso.ID), zap.Error(err))
		}
	}

	s.log.Info(ctx, "caso created from embedded view",
		logger.Module("embedded"), logger.Action("submit_caso"),
		zap.Int64("caso_id", caso.ID),
		zap.String("numero_caso", caso.NumeroCaso))

	return caso, nil
}

// registrarLlamada stores the call metadata and its event log entry. The
// caso survives even if the telephony metadata cannot be persisted.
func (s *EmbeddedService) registrarLlamada(ctx context.Context, caso *domain.Caso, req *domain.EmbeddedCasoRequest) {
	var datetimeLlamada *time.Time
	if req.Omnileads.Datetime != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.Omnileads.Datetime); err == nil {
			datetimeLlamada = &parsed
		}
	}

	observaciones := req.Descripcion
	_, err := s.interaccionRepo.Create(ctx, &domain.CreateInteraccionRequest{
		CasoID:                caso.ID,
		OmnileadsCallID:       req.Omnileads.CallID,
		OmnileadsCampaignID:   req.Omnileads.CampaignID,
		OmnileadsCampaignName: req.Omnileads.CampaignName,
		OmnileadsCampaignType: req.Omnileads.CampaignType,
		AgentID:               req.Omnileads.AgentID,
		AgentUsername:         req.Omnileads.AgentUsername,
		AgentName:             req.Omnileads.AgentName,
		TelefonoContacto:      req.Omnileads.Telefono,
		DatetimeLlamada:       datetimeLlamada,
		RecFilename:           req.Omnileads.RecFilename,
		Observaciones:         &observaciones,
	})
	if err != nil {
		s.log.Error(ctx, "failed to record interaccion",
			logger.Module("embedded"), logger.Action("submit_caso"),
			zap.Int64("caso_id", caso.ID), zap.Error(err))
		return
	}

	if err := s.casoRepo.AddEvento(ctx, caso.ID, domain.EventoInteraccion, nil, req.Omnileads.AgentName, nil, nil); err != nil {
		s.log.Error(ctx, "failed to add interaccion evento",
			logger.Module("embedded"), logger.Action("submit_caso"),
			zap.Int64("caso_id", caso.ID), zap.Error(err))
	}
}
