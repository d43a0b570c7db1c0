package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexmorbo/slack-notifier/application/dto"
	"github.com/alexmorbo/slack-notifier/domain/notification"
	"github.com/alexmorbo/slack-notifier/domain/recipient"
	"github.com/alexmorbo/slack-notifier/pkg/logger"
)

type ManageRoutesUseCase struct {
	routeRepo recipient.Repository
	allowlist recipient.Allowlist
	logger    *slog.Logger
}

func NewManageRoutesUseCase(routeRepo recipient.Repository, allowlist recipient.Allowlist, logger *slog.Logger) *ManageRoutesUseCase {
	return &ManageRoutesUseCase{routeRepo: routeRepo, allowlist: allowlist, logger: logger}
}

func (uc *ManageRoutesUseCase) Put(ctx context.Context, name string, input dto.RouteInput) (*dto.RouteOutput, error) {
	route, err := recipient.NewRoute(name, input.Route)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrInvalidInput, err)
	}
	if err := uc.allowlist.Check(route.Value()); err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrInvalidInput, err)
	}

	if err := uc.routeRepo.Save(ctx, route); err != nil {
		return nil, fmt.Errorf("save route: %w", err)
	}

	uc.logger.Info("Route saved",
		logger.ApplicationFields("route_saved",
			slog.String("recipient", route.Recipient()),
			slog.String("mode", notification.RouteMode(route.Value())),
		),
	)
	routesChangedCounter("save").Inc()

	return toRouteOutput(route), nil
}

func (uc *ManageRoutesUseCase) Get(ctx context.Context, name string) (*dto.RouteOutput, error) {
	route, err := uc.routeRepo.Find(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	return toRouteOutput(route), nil
}

func (uc *ManageRoutesUseCase) Delete(ctx context.Context, name string) error {
	if err := uc.routeRepo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}

	uc.logger.Info("Route deleted",
		logger.ApplicationFields("route_deleted", slog.String("recipient", name)),
	)
	routesChangedCounter("delete").Inc()

	return nil
}

func toRouteOutput(r *recipient.Route) *dto.RouteOutput {
	return &dto.RouteOutput{
		Recipient: r.Recipient(),
		Mode:      notification.RouteMode(r.Value()),
		UpdatedAt: r.UpdatedAt(),
	}
}
