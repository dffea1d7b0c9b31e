package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
)

var (
	ErrGroupNatureRequired = errors.New("nature is required for a root account group")
	ErrGroupCycle          = errors.New("re-parenting would create a cycle in the group tree")
	ErrGroupNatureChange   = errors.New("re-parenting would change the group's nature")
	ErrGroupNotEmpty       = errors.New("account group still has child groups or accounts")
	ErrGroupIsSystem       = errors.New("system account groups cannot be deleted")
)

// accountGroupService implements the AccountGroupSvcFacade interface
type accountGroupService struct {
	BaseService
	groupRepo   portsrepo.AccountGroupRepositoryFacade
	accountRepo portsrepo.LedgerAccountReader
}

// NewAccountGroupService creates a new account group service
func NewAccountGroupService(
	groupRepo portsrepo.AccountGroupRepositoryFacade,
	accountRepo portsrepo.LedgerAccountReader,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.AccountGroupSvcFacade {
	return &accountGroupService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		groupRepo:   groupRepo,
		accountRepo: accountRepo,
	}
}

// Ensure accountGroupService implements the AccountGroupSvcFacade interface
var _ portssvc.AccountGroupSvcFacade = (*accountGroupService)(nil)

// findGroupInBusiness loads a group, hiding groups of other businesses as not found.
func (s *accountGroupService) findGroupInBusiness(ctx context.Context, businessID, groupID string) (*domain.AccountGroup, error) {
	group, err := s.groupRepo.FindAccountGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return group, nil
}

// GetAccountGroupByID retrieves a specific account group
func (s *accountGroupService) GetAccountGroupByID(ctx context.Context, businessID string, groupID string, requestingUserID string) (*domain.AccountGroup, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findGroupInBusiness(ctx, businessID, groupID)
}

// ListAccountGroups retrieves all account groups of a business
func (s *accountGroupService) ListAccountGroups(ctx context.Context, businessID string, requestingUserID string) ([]domain.AccountGroup, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.ListAccountGroups(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account groups",
			slog.String("business_id", businessID))
		return nil, err
	}
	if groups == nil {
		return []domain.AccountGroup{}, nil
	}
	return groups, nil
}

// CreateAccountGroup persists a new account group. Child groups inherit the
// parent's nature; root groups must carry an explicit nature.
func (s *accountGroupService) CreateAccountGroup(ctx context.Context, businessID string, req dto.CreateAccountGroupRequest, creatorUserID string) (*domain.AccountGroup, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	nature := req.Nature
	if req.ParentGroupID != nil {
		parent, err := s.findGroupInBusiness(ctx, businessID, *req.ParentGroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent group %s not found", apperrors.ErrValidation, *req.ParentGroupID)
			}
			return nil, err
		}
		nature = parent.Nature
	} else if nature == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrGroupNatureRequired)
	}

	now := time.Now()
	group := domain.AccountGroup{
		AccountGroupID:     uuid.NewString(),
		BusinessID:         businessID,
		Name:               req.Name,
		ParentGroupID:      req.ParentGroupID,
		Nature:             nature,
		AffectsGrossProfit: req.AffectsGrossProfit,
		Sequence:           req.Sequence,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.groupRepo.SaveAccountGroup(ctx, group); err != nil {
		s.LogError(ctx, err, "Failed to save account group",
			slog.String("business_id", businessID),
			slog.String("group_name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account group created",
		slog.String("account_group_id", group.AccountGroupID),
		slog.String("business_id", businessID))
	return &group, nil
}

// UpdateAccountGroup updates a group's name, parent or sequence. A new parent
// must carry the same nature and must not be the group itself or one of its
// descendants.
func (s *accountGroupService) UpdateAccountGroup(ctx context.Context, businessID string, groupID string, req dto.UpdateAccountGroupRequest, requestingUserID string) (*domain.AccountGroup, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.findGroupInBusiness(ctx, businessID, groupID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Sequence != nil {
		group.Sequence = *req.Sequence
	}
	if req.ParentGroupID != nil && (group.ParentGroupID == nil || *group.ParentGroupID != *req.ParentGroupID) {
		newParent, err := s.findGroupInBusiness(ctx, businessID, *req.ParentGroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent group %s not found", apperrors.ErrValidation, *req.ParentGroupID)
			}
			return nil, err
		}
		if newParent.Nature != group.Nature {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrGroupNatureChange)
		}
		if err := s.checkNoCycle(ctx, businessID, groupID, newParent); err != nil {
			return nil, err
		}
		group.ParentGroupID = req.ParentGroupID
	}

	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = requestingUserID

	if err := s.groupRepo.UpdateAccountGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "Failed to update account group",
			slog.String("account_group_id", groupID))
		return nil, err
	}
	return group, nil
}

// checkNoCycle walks from the proposed parent up to the root and fails if it
// passes through groupID.
func (s *accountGroupService) checkNoCycle(ctx context.Context, businessID, groupID string, newParent *domain.AccountGroup) error {
	current := newParent
	for {
		if current.AccountGroupID == groupID {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrGroupCycle)
		}
		if current.ParentGroupID == nil {
			return nil
		}
		next, err := s.findGroupInBusiness(ctx, businessID, *current.ParentGroupID)
		if err != nil {
			return err
		}
		current = next
	}
}

// DeleteAccountGroup removes an empty, non-system account group
func (s *accountGroupService) DeleteAccountGroup(ctx context.Context, businessID string, groupID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	group, err := s.findGroupInBusiness(ctx, businessID, groupID)
	if err != nil {
		return err
	}
	if group.IsSystem {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrGroupIsSystem)
	}

	// Child groups block deletion
	groups, err := s.groupRepo.ListAccountGroups(ctx, businessID)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if g.ParentGroupID != nil && *g.ParentGroupID == groupID {
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrGroupNotEmpty)
		}
	}

	// Accounts under the group block deletion
	accounts, err := s.accountRepo.ListLedgerAccounts(ctx, businessID, false)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.AccountGroupID == groupID {
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrGroupNotEmpty)
		}
	}

	if err := s.groupRepo.DeleteAccountGroup(ctx, groupID); err != nil {
		s.LogError(ctx, err, "Failed to delete account group",
			slog.String("account_group_id", groupID))
		return err
	}

	s.LogInfo(ctx, "Account group deleted",
		slog.String("account_group_id", groupID),
		slog.String("business_id", businessID))
	return nil
}
