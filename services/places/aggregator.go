package places

import (
	"context"
	"sort"
	"strings"

	"buscalocal/models"

	"go.uber.org/zap"
)

// Aggregator orchestrates the primary and fallback providers for one
// search request: validate, try primary, fall back only on coverage gaps,
// merge, sort by distance. Providers are tried sequentially, never raced,
// so a request bills at most two provider calls.
type Aggregator struct {
	Primary   Provider
	Secondary Provider
	Logger    *zap.Logger
}

// NewAggregator wires the two provider adapters. Secondary may be nil.
func NewAggregator(primary, secondary Provider, logger *zap.Logger) *Aggregator {
	return &Aggregator{Primary: primary, Secondary: secondary, Logger: logger}
}

// Search runs the full pipeline and returns businesses sorted ascending by
// numeric distance (stable for exact ties). All failures come back as one
// of the typed errors in errors.go.
func (a *Aggregator) Search(ctx context.Context, req *models.SearchRequest) ([]models.Business, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if !a.primaryConfigured() && !a.secondaryConfigured() {
		return nil, &ProviderConfigError{
			Message: "No hay APIs configuradas",
			Details: "Configura una clave de API de proveedor de lugares en el servidor",
		}
	}

	var results []models.Business
	tryFallback := true

	if a.primaryConfigured() {
		res, err := a.Primary.Search(ctx, req)
		if err != nil {
			return nil, &ConnectivityError{
				Message: "Error de conexión",
				Details: "Verifica tu conexión a internet e intenta nuevamente",
				Err:     err,
			}
		}
		switch res.Status {
		case StatusOK:
			results = res.Businesses
			tryFallback = len(results) == 0
		case StatusZeroResults, StatusUnknown:
			// Plausibly a coverage gap the secondary provider can fill.
			a.Logger.Info("primary provider returned no usable results",
				zap.String("provider", a.Primary.Name()),
				zap.String("status", string(res.Status)))
			tryFallback = true
		default:
			// Structural problem with the request or the key; the
			// fallback would not rectify it either.
			return nil, &ProviderConfigError{
				Message: statusMessage(res.Status),
				Details: "Prueba con diferentes palabras clave o ajusta los filtros de búsqueda",
			}
		}
	}

	if tryFallback && a.secondaryConfigured() {
		res, err := a.Secondary.Search(ctx, req)
		switch {
		case err != nil:
			a.Logger.Warn("fallback provider failed",
				zap.String("provider", a.Secondary.Name()), zap.Error(err))
		case res.Status == StatusOK:
			// Appended, not deduplicated: the providers are assumed not
			// to overlap in practice.
			results = append(results, res.Businesses...)
		default:
			a.Logger.Warn("fallback provider returned no usable results",
				zap.String("provider", a.Secondary.Name()),
				zap.String("status", string(res.Status)))
		}
	}

	if len(results) == 0 {
		return nil, &NoResultsError{
			Message: "No se encontraron lugares",
			Details: "Intenta con otros términos de búsqueda o amplía el área de búsqueda",
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}

func (a *Aggregator) primaryConfigured() bool {
	return a.Primary != nil && a.Primary.Configured()
}

func (a *Aggregator) secondaryConfigured() bool {
	return a.Secondary != nil && a.Secondary.Configured()
}

func validateRequest(req *models.SearchRequest) error {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return &ValidationError{
			Message: "La búsqueda no puede estar vacía",
			Details: "Ingresa un término de búsqueda",
		}
	}
	if req.Location == nil || !finiteCoordinates(*req.Location) {
		return &ValidationError{
			Message: "Ubicación requerida",
			Details: "Activa tu ubicación e intenta nuevamente",
		}
	}
	return nil
}

func statusMessage(status ProviderStatus) string {
	switch status {
	case StatusZeroResults:
		return "No se encontraron lugares cerca de tu ubicación"
	case StatusInvalidRequest:
		return "Error en la búsqueda. Intenta con otros términos"
	case StatusRateLimited:
		return "Servicio temporalmente no disponible. Intenta más tarde"
	case StatusDenied:
		return "Servicio no disponible en este momento"
	case StatusUnknown:
		return "Error temporal. Intenta nuevamente"
	default:
		return "No se encontraron resultados. Intenta con otra búsqueda"
	}
}
