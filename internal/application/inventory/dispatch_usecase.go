package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/domain"
	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/inventory"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

// DispatchUseCase registra, edita y elimina despachos aplicando el efecto sobre el stock de los
// silos en la misma transacción (SELECT FOR UPDATE + ajuste relativo + Commit/Rollback).
type DispatchUseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	log      *logger.Logger
	now      func() time.Time
}

// NewDispatchUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewDispatchUseCase(txRunner TxRunner, repos repository.Repos, log *logger.Logger) *DispatchUseCase {
	return &DispatchUseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log.Named("dispatches"),
		now:      time.Now,
	}
}

// dispatchInput entrada ya validada.
type dispatchInput struct {
	siloID string
	client entity.Reference
	driver entity.Reference
	req    dto.DispatchRequest
}

func validateDispatch(in dto.DispatchRequest) (*dispatchInput, error) {
	siloID := strings.TrimSpace(in.SiloID)
	if siloID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.QuantityM3.IsPositive() || in.QuantityKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !inventory.ValidScale(in.QuantityM3) || !inventory.ValidScale(in.QuantityKg) {
		return nil, domain.ErrInvalidInput
	}
	client := entity.NewReference(in.ClientID, in.ClientName)
	driver := entity.NewReference(in.DriverID, in.DriverName)
	if client.IsZero() || driver.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	return &dispatchInput{siloID: siloID, client: client, driver: driver, req: in}, nil
}

// checkReferences verifica que las referencias Known apunten a registros existentes.
func checkReferences(ctx context.Context, repos repository.Repos, client, driver entity.Reference) error {
	if !client.IsManual() {
		c, err := repos.Clients.GetByID(ctx, client.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
	}
	if !driver.IsManual() {
		d, err := repos.Drivers.GetByID(ctx, driver.ID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// lockSilos bloquea los silos involucrados en orden de ID (evita deadlocks entre transacciones).
func lockSilos(ctx context.Context, silos repository.SiloRepository, ids ...string) (map[string]*entity.Silo, error) {
	uniq := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Strings(uniq)
	out := make(map[string]*entity.Silo, len(uniq))
	for _, id := range uniq {
		s, err := silos.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrNotFound
		}
		out[id] = s
	}
	return out, nil
}

// applyAdjustments verifica "stock insuficiente" para cada débito y luego aplica todos los ajustes
// de forma relativa en el almacén.
func (uc *DispatchUseCase) applyAdjustments(
	ctx context.Context,
	silos repository.SiloRepository,
	locked map[string]*entity.Silo,
	adjs []inventory.Adjustment,
	dispatchID string,
) error {
	for _, adj := range adjs {
		if err := inventory.CheckDebit(locked[adj.SiloID], adj); err != nil {
			uc.log.Warn().
				Str("dispatch_id", dispatchID).
				Str("silo_id", adj.SiloID).
				Str("delta", adj.Delta.String()).
				Str("current_stock", locked[adj.SiloID].CurrentStock.String()).
				Msg("despacho rechazado por stock insuficiente")
			return err
		}
	}
	for _, adj := range adjs {
		updated, err := silos.AdjustStock(ctx, adj.SiloID, adj.Delta)
		if err != nil {
			return err
		}
		uc.log.Info().
			Str("dispatch_id", dispatchID).
			Str("silo_id", adj.SiloID).
			Str("delta", adj.Delta.String()).
			Str("current_stock", updated.CurrentStock.String()).
			Msg("stock ajustado")
	}
	return nil
}

// Create registra un despacho y debita el silo. Verifica antes que haya stock suficiente.
//
// Errores: domain.ErrInvalidInput, domain.ErrNotFound (silo/cliente/conductor),
// domain.ErrInsufficientStock.
func (uc *DispatchUseCase) Create(ctx context.Context, req dto.DispatchRequest) (*dto.DispatchResponse, error) {
	in, err := validateDispatch(req)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	dispatch := &entity.Dispatch{
		ID:        uuid.New().String(),
		SiloID:    in.siloID,
		Client:    in.client,
		Driver:    in.driver,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyRequest(dispatch, in, now)

	var out dto.DispatchResponse
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		locked, err := lockSilos(ctx, repos.Silos, dispatch.SiloID)
		if err != nil {
			return err
		}
		if err := checkReferences(ctx, repos, dispatch.Client, dispatch.Driver); err != nil {
			return err
		}
		number, err := repos.Dispatches.NextNumber(ctx)
		if err != nil {
			return err
		}
		dispatch.DispatchNumber = number
		if err := repos.Dispatches.Create(ctx, dispatch); err != nil {
			return err
		}
		if err := uc.applyAdjustments(ctx, repos.Silos, locked, inventory.DispatchCreate(dispatch), dispatch.ID); err != nil {
			return err
		}
		names, err := resolveNames(ctx, repos, []*entity.Dispatch{dispatch})
		if err != nil {
			return err
		}
		out = dto.NewDispatchResponse(dispatch, names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edita un despacho. Si cambia la cantidad en el mismo silo se aplica solo el delta;
// si cambia el silo, se devuelve todo al anterior y se debita la cantidad nueva del nuevo.
func (uc *DispatchUseCase) Update(ctx context.Context, id string, req dto.DispatchRequest) (*dto.DispatchResponse, error) {
	in, err := validateDispatch(req)
	if err != nil {
		return nil, err
	}

	var out dto.DispatchResponse
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		old, err := repos.Dispatches.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		locked, err := lockSilos(ctx, repos.Silos, old.SiloID, in.siloID)
		if err != nil {
			return err
		}
		if err := checkReferences(ctx, repos, in.client, in.driver); err != nil {
			return err
		}
		adjs := inventory.DispatchUpdate(old, in.req.QuantityM3, in.siloID)
		if err := uc.applyAdjustments(ctx, repos.Silos, locked, adjs, old.ID); err != nil {
			return err
		}

		updated := *old
		updated.SiloID = in.siloID
		updated.Client = in.client
		updated.Driver = in.driver
		now := uc.now()
		applyRequest(&updated, in, old.DispatchDate)
		updated.UpdatedAt = now
		if err := repos.Dispatches.Update(ctx, &updated); err != nil {
			return err
		}
		names, err := resolveNames(ctx, repos, []*entity.Dispatch{&updated})
		if err != nil {
			return err
		}
		out = dto.NewDispatchResponse(&updated, names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el despacho y devuelve su cantidad al silo. Un segundo Delete del mismo ID
// no encuentra la fila y devuelve domain.ErrNotFound, por lo que el silo se acredita una sola vez.
func (uc *DispatchUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		dispatch, err := repos.Dispatches.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if dispatch == nil {
			return domain.ErrNotFound
		}
		locked, err := lockSilos(ctx, repos.Silos, dispatch.SiloID)
		if err != nil {
			return err
		}
		if err := repos.Dispatches.Delete(ctx, id); err != nil {
			return err
		}
		return uc.applyAdjustments(ctx, repos.Silos, locked, inventory.DispatchDelete(dispatch), dispatch.ID)
	})
}

// GetByID obtiene un despacho con nombres resueltos. Devuelve (nil, nil) si no existe.
func (uc *DispatchUseCase) GetByID(ctx context.Context, id string) (*dto.DispatchResponse, error) {
	d, err := uc.repos.Dispatches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	names, err := resolveNames(ctx, uc.repos, []*entity.Dispatch{d})
	if err != nil {
		return nil, err
	}
	out := dto.NewDispatchResponse(d, names)
	return &out, nil
}

// List lista despachos (más recientes primero) con filtros de periodo, silo, cliente, conductor
// y búsqueda libre.
func (uc *DispatchUseCase) List(ctx context.Context, in dto.DispatchListRequest) (*dto.DispatchListResponse, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.DefaultPage()

	filter := entity.DispatchFilter{
		SiloID:   in.SiloID,
		ClientID: in.ClientID,
		DriverID: in.DriverID,
		Search:   strings.TrimSpace(in.Search),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if from, to, ok := PeriodRange(in.Period, uc.now()); ok {
		filter.From, filter.To = &from, &to
	}

	list, total, err := uc.repos.Dispatches.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names, err := resolveNames(ctx, uc.repos, list)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DispatchResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.NewDispatchResponse(d, names))
	}
	return &dto.DispatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// applyRequest copia los campos editables del request. defaultDate se usa si no viene fecha.
func applyRequest(d *entity.Dispatch, in *dispatchInput, defaultDate time.Time) {
	d.QuantityM3 = in.req.QuantityM3
	d.QuantityKg = in.req.QuantityKg
	d.DispatchDate = defaultDate
	if in.req.DispatchDate != nil {
		d.DispatchDate = *in.req.DispatchDate
	}
	d.DeliveryAddress = strings.TrimSpace(in.req.DeliveryAddress)
	d.Resistance = strings.TrimSpace(in.req.Resistance)
	d.CementType = strings.TrimSpace(in.req.CementType)
	d.Slump = strings.TrimSpace(in.req.Slump)
	d.Notes = strings.TrimSpace(in.req.Notes)
}
