package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vtc-pricing-service/internal/compliance"
	"vtc-pricing-service/internal/model"
)

type ComplianceService struct {
	settings SettingsStore
}

func NewComplianceService(settings SettingsStore) *ComplianceService {
	return &ComplianceService{settings: settings}
}

// ComplianceRequest describes already-routed legs to check. The regulatory
// category comes from the vehicle category when one is given.
type ComplianceRequest struct {
	VehicleCategoryID  *uuid.UUID                    `json:"vehicle_category_id"`
	RegulatoryCategory model.RegulatoryCategory      `json:"regulatory_category"`
	LicenseCategory    string                        `json:"license_category"`
	Segments           []model.Segment               `json:"segments"`
	PickupAt           time.Time                     `json:"pickup_at"`
	EstimatedDropoffAt *time.Time                    `json:"estimated_dropoff_at"`
	StaffingPolicy     model.StaffingSelectionPolicy `json:"staffing_policy"`
}

type AlternativesResponse struct {
	Validation   model.ComplianceValidationResult `json:"validation"`
	Alternatives model.AlternativesResult         `json:"alternatives"`
	Selection    model.StaffingPlanSelection      `json:"selection"`
}

func (s *ComplianceService) Validate(ctx context.Context, principal model.Principal, req ComplianceRequest) (*model.ComplianceValidationResult, error) {
	_, in, rules, err := s.prepare(ctx, principal, req)
	if err != nil {
		return nil, err
	}
	result := compliance.ValidateHeavyVehicleCompliance(in, rules)
	return &result, nil
}

// Alternatives validates the legs and, when they break a rule, lists and
// ranks the staffing alternatives.
func (s *ComplianceService) Alternatives(ctx context.Context, principal model.Principal, req ComplianceRequest) (*AlternativesResponse, error) {
	settings, in, rules, err := s.prepare(ctx, principal, req)
	if err != nil {
		return nil, err
	}

	validation := compliance.ValidateHeavyVehicleCompliance(in, rules)
	alternatives := compliance.GenerateAlternatives(validation, settings.Pricing.StaffingCosts())

	policy := req.StaffingPolicy
	if policy == "" {
		policy = settings.Pricing.StaffingSelectionPolicy
	}
	return &AlternativesResponse{
		Validation:   validation,
		Alternatives: alternatives,
		Selection:    compliance.SelectBestStaffingPlan(alternatives, policy),
	}, nil
}

func (s *ComplianceService) prepare(ctx context.Context, principal model.Principal, req ComplianceRequest) (*model.OrganizationSettings, compliance.Input, model.RSERules, error) {
	if !principal.CanQuote() {
		return nil, compliance.Input{}, model.RSERules{}, ErrPermissionDenied
	}
	if len(req.Segments) == 0 {
		return nil, compliance.Input{}, model.RSERules{}, fmt.Errorf("%w: at least one segment is required", ErrInvalidInput)
	}
	for _, seg := range req.Segments {
		if seg.DistanceKm < 0 || seg.DurationMinutes < 0 {
			return nil, compliance.Input{}, model.RSERules{}, fmt.Errorf("%w: negative distance or duration in %s segment", ErrInvalidInput, seg.Name)
		}
	}
	if req.EstimatedDropoffAt != nil && req.EstimatedDropoffAt.Before(req.PickupAt) {
		return nil, compliance.Input{}, model.RSERules{}, fmt.Errorf("%w: estimated dropoff before pickup", ErrInvalidInput)
	}

	settings, err := s.settings.Load(ctx, principal.OrgID)
	if err != nil {
		return nil, compliance.Input{}, model.RSERules{}, fmt.Errorf("load settings: %w", err)
	}

	category := req.RegulatoryCategory
	licence := req.LicenseCategory
	if req.VehicleCategoryID != nil {
		vc, ok := settings.VehicleCategory(*req.VehicleCategoryID)
		if !ok {
			return nil, compliance.Input{}, model.RSERules{}, fmt.Errorf("%w: unknown vehicle category %s", ErrInvalidInput, *req.VehicleCategoryID)
		}
		category = vc.RegulatoryCategory
		licence = vc.LicenseCategory
	}
	if category == "" {
		category = model.RegulatoryCategoryLight
	}

	in := compliance.Input{
		RegulatoryCategory: category,
		Segments:           req.Segments,
		PickupAt:           req.PickupAt,
		EstimatedDropoffAt: req.EstimatedDropoffAt,
	}
	return settings, in, settings.RulesFor(licence), nil
}
