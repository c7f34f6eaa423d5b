package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

var (
	ErrCasoNotFound     = repo.ErrCasoNotFound
	ErrPacienteNotFound = repo.ErrPacienteNotFound
	ErrMotivoNotFound   = repo.ErrMotivoNotFound
)

// SinAsignar is the placeholder shown in assignment history when a caso had
// no previous agent.
const SinAsignar = "Sin asignar"

const comentarioCasoCreado = "Caso creado"

// CasoService implements the caso lifecycle: numbering, state history, the
// unified event log and the alerts derived from priority.
type CasoService struct {
	casoRepo        *repo.CasoRepo
	pacienteRepo    *repo.PacienteRepo
	motivoRepo      *repo.MotivoRepo
	usuarioRepo     *repo.UsuarioRepo
	interaccionRepo *repo.InteraccionRepo
	alertaRepo      *repo.AlertaRepo
	log             *logger.Logger
}

func NewCasoService(
	casoRepo *repo.CasoRepo,
	pacienteRepo *repo.PacienteRepo,
	motivoRepo *repo.MotivoRepo,
	usuarioRepo *repo.UsuarioRepo,
	interaccionRepo *repo.InteraccionRepo,
	alertaRepo *repo.AlertaRepo,
	log *logger.Logger,
) *CasoService {
	return &CasoService{
		casoRepo:        casoRepo,
		pacienteRepo:    pacienteRepo,
		motivoRepo:      motivoRepo,
		usuarioRepo:     usuarioRepo,
		interaccionRepo: interaccionRepo,
		alertaRepo:      alertaRepo,
		log:             log,
	}
}

// GenerarNumeroCaso builds the next case number for today, in UTC, with the
// format PQR-YYYYMMDD-0001. The sequence restarts every day.
func (s *CasoService) GenerarNumeroCaso(ctx context.Context) (string, error) {
	prefix := "PQR-" + time.Now().UTC().Format("20060102") + "-"

	last, err := s.casoRepo.LastNumeroForPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}

	siguiente := 1
	if last != "" {
		parts := strings.Split(last, "-")
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return "", fmt.Errorf("malformed numero_caso %q: %w", last, err)
		}
		siguiente = n + 1
	}

	return fmt.Sprintf("%s%04d", prefix, siguiente), nil
}

// Create radica a new caso on behalf of the authenticated agent. It assigns
// the case number, seeds the history and raises the high priority alert.
func (s *CasoService) Create(ctx context.Context, req *domain.CreateCasoRequest, actor *domain.Usuario) (*domain.Caso, error) {
	if _, err := s.pacienteRepo.GetByID(ctx, req.PacienteID); err != nil {
		return nil, err
	}
	if _, err := s.motivoRepo.GetByID(ctx, req.MotivoID); err != nil {
		return nil, err
	}

	numero, err := s.GenerarNumeroCaso(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate numero_caso: %w", err)
	}

	caso, err := s.casoRepo.Create(ctx, repo.CreateCasoParams{
		NumeroCaso:       numero,
		PacienteID:       req.PacienteID,
		MotivoID:         req.MotivoID,
		Prioridad:        req.Prioridad,
		Estado:           req.Estado,
		Origen:           domain.OrigenWeb,
		Descripcion:      req.Descripcion,
		AgenteCreadorID:  actor.ID,
		AgenteAsignadoID: req.AgenteAsignadoID,
	})
	if err != nil {
		return nil, err
	}

	s.registrarCreacion(ctx, caso, &actor.ID, comentarioCasoCreado)

	if caso.Prioridad == domain.PrioridadAlta {
		if _, err := s.alertaRepo.Create(ctx, caso.ID, domain.AlertaPrioridadAlta); err != nil {
			s.log.Error(ctx, "failed to create high priority alerta",
				logger.Module("caso"), logger.Action("create"),
				zap.Int64("caso_id", caso.ID), zap.Error(err))
		}
	}

	s.log.Info(ctx, "caso created",
		logger.Module("caso"), logger.Action("create"),
		zap.Int64("caso_id", caso.ID),
		zap.String("numero_caso", caso.NumeroCaso),
		zap.String("prioridad", string(caso.Prioridad)),
	)

	return caso, nil
}

// registrarCreacion seeds both history tables for a brand new caso. History
// failures are logged but never roll back the caso itself.
func (s *CasoService) registrarCreacion(ctx context.Context, caso *domain.Caso, usuarioID *int64, comentario string) {
	estado := string(caso.Estado)
	if err := s.casoRepo.AddHistorialEstado(ctx, caso.ID, nil, estado, usuarioID, &comentario); err != nil {
		s.log.Error(ctx, "failed to add historial_estado",
			logger.Module("caso"), logger.Action("create"),
			zap.Int64("caso_id", caso.ID), zap.Error(err))
	}
	if err := s.casoRepo.AddEvento(ctx, caso.ID, domain.EventoCreacion, nil, &estado, usuarioID, &comentario); err != nil {
		s.log.Error(ctx, "failed to add creacion evento",
			logger.Module("caso"), logger.Action("create"),
			zap.Int64("caso_id", caso.ID), zap.Error(err))
	}
}

// GetByID returns a caso with every relation expanded
func (s *CasoService) GetByID(ctx context.Context, id int64) (*domain.CasoDetalle, error) {
	caso, err := s.casoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detalle := &domain.CasoDetalle{Caso: *caso}

	if detalle.Paciente, err = s.pacienteRepo.GetByID(ctx, caso.PacienteID); err != nil {
		return nil, fmt.Errorf("load paciente: %w", err)
	}
	if detalle.Motivo, err = s.motivoRepo.GetByID(ctx, caso.MotivoID); err != nil {
		return nil, fmt.Errorf("load motivo: %w", err)
	}
	if detalle.AgenteCreador, err = s.usuarioRepo.GetByID(ctx, caso.AgenteCreadorID); err != nil {
		return nil, fmt.Errorf("load agente creador: %w", err)
	}
	if caso.AgenteAsignadoID != nil {
		if detalle.AgenteAsignado, err = s.usuarioRepo.GetByID(ctx, *caso.AgenteAsignadoID); err != nil {
			return nil, fmt.Errorf("load agente asignado: %w", err)
		}
	}
	if detalle.Interacciones, err = s.interaccionRepo.ListByCaso(ctx, id); err != nil {
		return nil, err
	}
	if detalle.HistorialEstados, err = s.casoRepo.HistorialEstados(ctx, id); err != nil {
		return nil, err
	}
	if detalle.HistorialEventos, err = s.casoRepo.Eventos(ctx, id); err != nil {
		return nil, err
	}

	return detalle, nil
}

// List returns casos matching the filters
func (s *CasoService) List(ctx context.Context, params domain.ListCasosParams) ([]domain.Caso, error) {
	if params.Limit <= 0 || params.Limit > 1000 {
		params.Limit = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}
	return s.casoRepo.List(ctx, params)
}

// Update applies a partial update, closing the caso when the estado moves to
// CERRADO for the first time, and appends one history entry per changed
// field. The optional comentario travels with the estado change only.
func (s *CasoService) Update(ctx context.Context, id int64, req *domain.UpdateCasoRequest, actor *domain.Usuario) (*domain.Caso, error) {
	anterior, err := s.casoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	params := repo.UpdateCasoParams{
		Estado:            req.Estado,
		Prioridad:         req.Prioridad,
		AgenteAsignadoID:  req.AgenteAsignadoID,
		AgenteAsignadoSet: req.AgenteAsignadoSet,
		Descripcion:       req.Descripcion,
	}

	// First close stamps the resolution metrics. Reclosing keeps the
	// original values.
	if req.Estado != nil && *req.Estado == domain.EstadoCerrado && anterior.FechaCierre == nil {
		cierre := time.Now().UTC()
		horas := cierre.Sub(anterior.FechaCreacion).Hours()
		params.FechaCierre = &cierre
		params.TiempoResolucionHoras = &horas
	}

	caso, err := s.casoRepo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}

	s.registrarCambios(ctx, anterior, caso, req, actor)

	s.log.Info(ctx, "caso updated",
		logger.Module("caso"), logger.Action("update"),
		zap.Int64("caso_id", caso.ID),
		zap.String("estado", string(caso.Estado)),
	)

	return caso, nil
}

// registrarCambios appends history rows for each field that actually changed
func (s *CasoService) registrarCambios(ctx context.Context, anterior, actual *domain.Caso, req *domain.UpdateCasoRequest, actor *domain.Usuario) {
	usuarioID := &actor.ID

	if req.Estado != nil && anterior.Estado != actual.Estado {
		estadoAnterior := string(anterior.Estado)
		estadoNuevo := string(actual.Estado)
		if err := s.casoRepo.AddHistorialEstado(ctx, actual.ID, &estadoAnterior, estadoNuevo, usuarioID, req.Comentario); err != nil {
			s.log.Error(ctx, "failed to add historial_estado",
				logger.Module("caso"), logger.Action("update"),
				zap.Int64("caso_id", actual.ID), zap.Error(err))
		}
		s.addEvento(ctx, actual.ID, domain.EventoCambioEstado, &estadoAnterior, &estadoNuevo, usuarioID, req.Comentario)
	}

	if req.Prioridad != nil && anterior.Prioridad != actual.Prioridad {
		prioridadAnterior := string(anterior.Prioridad)
		prioridadNueva := string(actual.Prioridad)
		s.addEvento(ctx, actual.ID, domain.EventoCambioPrioridad, &prioridadAnterior, &prioridadNueva, usuarioID, nil)
	}

	// An explicit null unassigns: the evento records "Sin asignar" as the
	// new value.
	if req.AgenteAsignadoSet && !sameAgent(anterior.AgenteAsignadoID, actual.AgenteAsignadoID) {
		valorAnterior := s.nombreAgente(ctx, anterior.AgenteAsignadoID)
		valorNuevo := s.nombreAgente(ctx, actual.AgenteAsignadoID)
		s.addEvento(ctx, actual.ID, domain.EventoAsignacion, &valorAnterior, &valorNuevo, usuarioID, nil)
	}

	if req.Descripcion != nil && anterior.Descripcion != actual.Descripcion {
		s.addEvento(ctx, actual.ID, domain.EventoEdicionDescripcion, nil, nil, usuarioID, nil)
	}
}

func (s *CasoService) addEvento(ctx context.Context, casoID int64, tipo domain.TipoEvento, anterior, nuevo *string, usuarioID *int64, comentario *string) {
	if err := s.casoRepo.AddEvento(ctx, casoID, tipo, anterior, nuevo, usuarioID, comentario); err != nil {
		s.log.Error(ctx, "failed to add evento",
			logger.Module("caso"), logger.Action("update"),
			zap.Int64("caso_id", casoID),
			zap.String("tipo_evento", string(tipo)),
			zap.Error(err))
	}
}

// nombreAgente resolves the display name used in assignment history
func (s *CasoService) nombreAgente(ctx context.Context, id *int64) string {
	if id == nil {
		return SinAsignar
	}
	usuario, err := s.usuarioRepo.GetByID(ctx, *id)
	if err != nil {
		if !errors.Is(err, repo.ErrUsuarioNotFound) {
			s.log.Warn(ctx, "failed to resolve agente name",
				logger.Module("caso"), logger.Action("update"), zap.Error(err))
		}
		return SinAsignar
	}
	return usuario.NombreCompleto
}

func sameAgent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
