package service

import (
	"context"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

var ErrPacienteDuplicado = repo.ErrPacienteDuplicado

// PacienteService handles the paciente directory
type PacienteService struct {
	pacienteRepo *repo.PacienteRepo
	casoRepo     *repo.CasoRepo
	log          *logger.Logger
}

func NewPacienteService(pacienteRepo *repo.PacienteRepo, casoRepo *repo.CasoRepo, log *logger.Logger) *PacienteService {
	return &PacienteService{
		pacienteRepo: pacienteRepo,
		casoRepo:     casoRepo,
		log:          log,
	}
}

// Create registers a new paciente
func (s *PacienteService) Create(ctx context.Context, req *domain.CreatePacienteRequest, actor *domain.Usuario) (*domain.Paciente, error) {
	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}

	paciente, err := s.pacienteRepo.Create(ctx, req, actorID)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "paciente created",
		logger.Module("paciente"), logger.Action("create"),
		zap.Int64("paciente_id", paciente.ID))

	return paciente, nil
}

// GetByID returns a paciente by primary key
func (s *PacienteService) GetByID(ctx context.Context, id int64) (*domain.Paciente, error) {
	return s.pacienteRepo.GetByID(ctx, id)
}

// GetByIdentificacion returns a paciente by cedula
func (s *PacienteService) GetByIdentificacion(ctx context.Context, identificacion string) (*domain.Paciente, error) {
	return s.pacienteRepo.GetByIdentificacion(ctx, identificacion)
}

// List returns pacientes matching the filters
func (s *PacienteService) List(ctx context.Context, params domain.ListPacientesParams) ([]domain.Paciente, error) {
	if params.Limit <= 0 || params.Limit > 1000 {
		params.Limit = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}
	return s.pacienteRepo.List(ctx, params)
}

// Update applies a partial update recording the acting usuario
func (s *PacienteService) Update(ctx context.Context, id int64, req *domain.UpdatePacienteRequest, actor *domain.Usuario) (*domain.Paciente, error) {
	paciente, err := s.pacienteRepo.Update(ctx, id, req, actor.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "paciente updated",
		logger.Module("paciente"), logger.Action("update"),
		zap.Int64("paciente_id", paciente.ID))

	return paciente, nil
}

// Casos returns a paciente's case history, newest first
func (s *PacienteService) Casos(ctx context.Context, pacienteID int64) ([]domain.Caso, error) {
	if _, err := s.pacienteRepo.GetByID(ctx, pacienteID); err != nil {
		return nil, err
	}
	return s.casoRepo.ListByPaciente(ctx, pacienteID)
}
