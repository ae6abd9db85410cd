package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

var (
	ErrOrgNotFound = errors.New("organization not found")
	ErrNotAFirm    = errors.New("parent organization is not a firm")
)

// OrgService manages the two-level organization graph. Role lists are
// derived reads over the membership roster, never stored independently.
type OrgService struct {
	Store store.Store
}

// CreateFirm creates a root organization and grants ownerUserID an admin
// membership in the same transaction; a failure of either leaves nothing
// behind.
func (s *OrgService) CreateFirm(ctx context.Context, name, ownerUserID string) (domain.Org, error) {
	log := slogx.FromContext(ctx)

	org, err := domain.NewFirm(idx.New().String(), name)
	if err != nil {
		return domain.Org{}, err
	}

	if _, err := s.Store.Users().GetUserByID(ctx, ownerUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Org{}, ErrUserNotFound
		}
		return domain.Org{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Orgs().CreateOrg(ctx, org); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, domain.Membership{
			ID:     idx.New().String(),
			UserID: ownerUserID,
			OrgID:  org.ID,
			Role:   domain.RoleAdmin,
		})
	})
	if err != nil {
		log.Error("failed to create firm", slog.Any("error", err))
		return domain.Org{}, err
	}

	log.Info("firm created",
		slog.String("org_id", org.ID),
		slog.String("owner_id", ownerUserID),
	)
	return org, nil
}

// CreateClient creates a child organization under parentFirmID.
func (s *OrgService) CreateClient(ctx context.Context, name, parentFirmID string) (domain.Org, error) {
	log := slogx.FromContext(ctx)

	parent, err := s.Store.Orgs().GetOrgByID(ctx, parentFirmID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Org{}, ErrOrgNotFound
		}
		return domain.Org{}, err
	}
	if parent.Kind != domain.OrgFirm {
		return domain.Org{}, ErrNotAFirm
	}

	org, err := domain.NewClient(idx.New().String(), name, parent.ID)
	if err != nil {
		return domain.Org{}, err
	}

	if err := s.Store.Orgs().CreateOrg(ctx, org); err != nil {
		log.Error("failed to create client org", slog.Any("error", err))
		return domain.Org{}, err
	}

	log.Info("client org created",
		slog.String("org_id", org.ID),
		slog.String("parent_id", parent.ID),
	)
	return org, nil
}

// Get fetches an organization by ID.
func (s *OrgService) Get(ctx context.Context, orgID string) (domain.Org, error) {
	org, err := s.Store.Orgs().GetOrgByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Org{}, ErrOrgNotFound
		}
		return domain.Org{}, err
	}
	return org, nil
}

// Clients lists the child organizations of a firm.
func (s *OrgService) Clients(ctx context.Context, firmID string) ([]domain.Org, error) {
	return s.Store.Orgs().ListClients(ctx, firmID)
}

// Admins returns the users holding the admin role in the org.
func (s *OrgService) Admins(ctx context.Context, orgID string) ([]domain.User, error) {
	return s.Store.Memberships().ListOrgMembers(ctx, orgID, domain.RoleAdmin)
}

// Staff returns the users holding the staff role in the org. Together with
// Admins it partitions the roster: every member appears in exactly one.
func (s *OrgService) Staff(ctx context.Context, orgID string) ([]domain.User, error) {
	return s.Store.Memberships().ListOrgMembers(ctx, orgID, domain.RoleStaff)
}
