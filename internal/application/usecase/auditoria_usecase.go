package usecase

import (
	"context"
	"time"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
	"github.com/ergpos/inventario-api/pkg/logger"
)

// AuditoriaUseCase consultas de solo lectura sobre el rastro de auditoría,
// más la purga administrativa. La escritura de registros no pasa por aquí:
// ocurre dentro de las transacciones que mutan datos.
type AuditoriaUseCase struct {
	repo repository.AuditoriaRepository
	log  *logger.Logger
}

func NewAuditoriaUseCase(repo repository.AuditoriaRepository, log *logger.Logger) *AuditoriaUseCase {
	return &AuditoriaUseCase{repo: repo, log: log}
}

// Obtener devuelve un registro por ID.
func (uc *AuditoriaUseCase) Obtener(ctx context.Context, id int64) (*dto.AuditoriaResponse, error) {
	registro, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		return nil, domain.NewError(domain.CodeAuditNotFound, "registro de auditoría no encontrado")
	}
	return toAuditoriaResponse(registro), nil
}

// Buscar resuelve los filtros de consulta contra los listados del repositorio.
// Los filtros son excluyentes: el primero presente gana, en el orden
// fechas > registro > tabla > evento > usuario; sin filtros devuelve los
// más recientes.
func (uc *AuditoriaUseCase) Buscar(ctx context.Context, q dto.BuscarAuditoriaQuery) ([]*dto.AuditoriaResponse, error) {
	var (
		registros []*entity.RegistroAuditoria
		err       error
	)
	switch {
	case q.Desde != "" || q.Hasta != "":
		desde, hasta, perr := parseRangoFechas(q.Desde, q.Hasta)
		if perr != nil {
			return nil, perr
		}
		registros, err = uc.repo.ListByFechas(ctx, desde, hasta)
	case q.Tabla != "" && q.UsuarioID == "" && q.Evento == "":
		registros, err = uc.repo.ListByTabla(ctx, q.Tabla)
	case q.Evento != "":
		if !eventoValido(q.Evento) {
			return nil, domain.Errorf(domain.CodeInvalidInput, "tipo de evento inválido: %s", q.Evento)
		}
		registros, err = uc.repo.ListByEvento(ctx, q.Evento)
	case q.UsuarioID != "":
		registros, err = uc.repo.ListByUsuario(ctx, q.UsuarioID)
	default:
		registros, err = uc.repo.ListRecientes(ctx, 100)
	}
	if err != nil {
		return nil, err
	}
	return toAuditoriaResponses(registros), nil
}

// HistorialRegistro devuelve todos los eventos de un registro concreto,
// por ejemplo el ciclo de vida completo de un movimiento.
func (uc *AuditoriaUseCase) HistorialRegistro(ctx context.Context, tabla, registroID string) ([]*dto.AuditoriaResponse, error) {
	registros, err := uc.repo.ListByRegistro(ctx, tabla, registroID)
	if err != nil {
		return nil, err
	}
	return toAuditoriaResponses(registros), nil
}

// ContarPorEvento cuenta los registros de un tipo de evento.
func (uc *AuditoriaUseCase) ContarPorEvento(ctx context.Context, eventoTipo string) (int64, error) {
	if !eventoValido(eventoTipo) {
		return 0, domain.Errorf(domain.CodeInvalidInput, "tipo de evento inválido: %s", eventoTipo)
	}
	return uc.repo.CountByEvento(ctx, eventoTipo)
}

// PurgarAntiguos elimina registros anteriores a la fecha límite y devuelve
// cuántos se eliminaron. Solo para mantenimiento administrativo.
func (uc *AuditoriaUseCase) PurgarAntiguos(ctx context.Context, fechaLimite time.Time) (int64, error) {
	if fechaLimite.After(time.Now()) {
		return 0, domain.NewError(domain.CodeInvalidDateRange, "la fecha límite no puede ser futura")
	}
	n, err := uc.repo.DeleteAntiguos(ctx, fechaLimite)
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("eliminados", n).Time("fecha_limite", fechaLimite).Msg("auditoría purgada")
	return n, nil
}

func eventoValido(evento string) bool {
	return evento == entity.EventoInsert || evento == entity.EventoUpdate || evento == entity.EventoDelete
}

func parseRangoFechas(desdeStr, hastaStr string) (time.Time, time.Time, error) {
	hasta := time.Now()
	desde := hasta.AddDate(-1, 0, 0)
	if desdeStr != "" {
		t, err := time.Parse(time.RFC3339, desdeStr)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Errorf(domain.CodeInvalidInput, "fecha desde inválida: %s", desdeStr)
		}
		desde = t
	}
	if hastaStr != "" {
		t, err := time.Parse(time.RFC3339, hastaStr)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Errorf(domain.CodeInvalidInput, "fecha hasta inválida: %s", hastaStr)
		}
		hasta = t
	}
	if desde.After(hasta) {
		return time.Time{}, time.Time{}, domain.NewError(domain.CodeInvalidDateRange, "la fecha desde no puede ser posterior a la fecha hasta")
	}
	return desde, hasta, nil
}

func toAuditoriaResponse(r *entity.RegistroAuditoria) *dto.AuditoriaResponse {
	return &dto.AuditoriaResponse{
		ID:          r.ID,
		EventoTipo:  r.EventoTipo,
		TablaNombre: r.TablaNombre,
		RegistroID:  r.RegistroID,
		UsuarioID:   r.UsuarioID,
		Detalle:     r.Detalle,
		CreatedAt:   r.CreatedAt,
	}
}

func toAuditoriaResponses(registros []*entity.RegistroAuditoria) []*dto.AuditoriaResponse {
	out := make([]*dto.AuditoriaResponse, 0, len(registros))
	for _, r := range registros {
		out = append(out, toAuditoriaResponse(r))
	}
	return out
}
