// Package analytics contiene el caso de uso del dashboard agregado del
// tracker (métricas, distribuciones y listados recientes).
package analytics

import (
	"context"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

const (
	dashboardTopLocations = 10 // ubicaciones en el widget de lugares
	dashboardRecent       = 10 // actividades en el widget de recientes
)

// DashboardUseCase genera el resumen agregado visible para el actor.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) más el caso de
// uso de follow-ups para la ventana de próximos. No toca las colecciones
// directamente; delega todo en los puertos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	followupUC    *usecase.FollowupUseCase
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, followupUC *usecase.FollowupUseCase) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, followupUC: followupUC}
}

// Summary construye el DashboardSummaryDTO acotado al actor: un admin ve
// todos los registros, un marketer solo los suyos. Las consultas
// independientes se lanzan en paralelo.
func (uc *DashboardUseCase) Summary(ctx context.Context, actor dto.Actor) (*dto.DashboardSummaryDTO, error) {
	marketer := actor.Username
	if actor.IsAdmin() {
		marketer = "" // sin filtro de propietario
	}

	type totalsResult struct {
		totals repository.TrackerTotals
		err    error
	}
	type distResult struct {
		dist map[string]int
		err  error
	}
	type locationsResult struct {
		locations []repository.LocationCount
		err       error
	}
	type recentResult struct {
		activities []*entity.Activity
		err        error
	}

	totalsCh := make(chan totalsResult, 1)
	statusCh := make(chan distResult, 1)
	typeCh := make(chan distResult, 1)
	locationsCh := make(chan locationsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetTotals(ctx, marketer)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		d, err := uc.analyticsRepo.StatusDistribution(ctx, marketer)
		statusCh <- distResult{d, err}
	}()
	go func() {
		d, err := uc.analyticsRepo.TypeDistribution(ctx, marketer)
		typeCh <- distResult{d, err}
	}()
	go func() {
		l, err := uc.analyticsRepo.TopLocations(ctx, marketer, dashboardTopLocations)
		locationsCh <- locationsResult{l, err}
	}()
	go func() {
		r, err := uc.analyticsRepo.RecentActivities(ctx, marketer, dashboardRecent)
		recentCh <- recentResult{r, err}
	}()

	totals := <-totalsCh
	status := <-statusCh
	types := <-typeCh
	locations := <-locationsCh
	recent := <-recentCh

	for _, err := range []error{totals.err, status.err, types.err, locations.err, recent.err} {
		if err != nil {
			return nil, err
		}
	}

	summary := &dto.DashboardSummaryDTO{
		Totals: dto.DashboardTotalsDTO{
			Activities: totals.totals.Activities,
			Prospects:  totals.totals.Prospects,
			Marketers:  totals.totals.Marketers,
			Followups:  totals.totals.Followups,
		},
		StatusDistribution: status.dist,
		TypeDistribution:   types.dist,
	}

	summary.TopLocations = make([]dto.LocationCountDTO, 0, len(locations.locations))
	for _, l := range locations.locations {
		summary.TopLocations = append(summary.TopLocations, dto.LocationCountDTO{
			Location: l.Location,
			Count:    l.Count,
		})
	}

	summary.RecentActivities = make([]dto.ActivityResponse, 0, len(recent.activities))
	for _, a := range recent.activities {
		summary.RecentActivities = append(summary.RecentActivities, dto.ActivityResponse{
			ID:               a.ID,
			MarketerUsername: a.MarketerUsername,
			ProspectName:     a.ProspectName,
			ProspectLocation: a.ProspectLocation,
			ContactPerson:    a.ContactPerson,
			ContactPosition:  a.ContactPosition,
			ContactPhone:     a.ContactPhone,
			ContactEmail:     a.ContactEmail,
			ActivityDate:     a.ActivityDate,
			ActivityType:     a.ActivityType,
			Status:           a.Status,
			Description:      a.Description,
			CreatedAt:        a.CreatedAt,
			UpdatedAt:        a.UpdatedAt,
		})
	}

	// El desglose por marketer solo aparece en la vista de admin.
	if actor.IsAdmin() {
		perMarketer, err := uc.analyticsRepo.ActivitiesPerMarketer(ctx)
		if err != nil {
			return nil, err
		}
		summary.ActivitiesPerMarketer = make([]dto.MarketerCountDTO, 0, len(perMarketer))
		for _, m := range perMarketer {
			summary.ActivitiesPerMarketer = append(summary.ActivitiesPerMarketer, dto.MarketerCountDTO{
				Username: m.Username,
				Count:    m.Count,
			})
		}
	}

	upcoming, err := uc.followupUC.Upcoming(actor, usecase.DefaultUpcomingHorizonDays)
	if err != nil {
		return nil, err
	}
	summary.UpcomingFollowups = make([]dto.UpcomingFollowupResponse, 0, len(upcoming))
	for _, u := range upcoming {
		summary.UpcomingFollowups = append(summary.UpcomingFollowups, *u)
	}

	return summary, nil
}
