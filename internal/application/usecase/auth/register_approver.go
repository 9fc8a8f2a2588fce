// Package auth contains approver account use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
)

// RegisterApproverInput represents the input for approver registration.
type RegisterApproverInput struct {
	Email    string
	Name     string
	Password string
	Role     entity.ApproverRole
}

// RegisterApproverOutput represents the output of approver registration.
type RegisterApproverOutput struct {
	AccessToken string
	Approver    *entity.Approver
}

// RegisterApproverUseCase handles approver registration logic.
type RegisterApproverUseCase struct {
	approverRepo    adapter.ApproverRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	clock           adapter.Clock
	idGenerator     adapter.IDGenerator
}

// NewRegisterApproverUseCase creates a new RegisterApproverUseCase instance.
func NewRegisterApproverUseCase(
	approverRepo adapter.ApproverRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	clock adapter.Clock,
	idGenerator adapter.IDGenerator,
) *RegisterApproverUseCase {
	return &RegisterApproverUseCase{
		approverRepo:    approverRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		clock:           clock,
		idGenerator:     idGenerator,
	}
}

// Execute performs the approver registration.
func (uc *RegisterApproverUseCase) Execute(ctx context.Context, input RegisterApproverInput) (*RegisterApproverOutput, error) {
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if !entity.IsValidApproverRole(input.Role) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidRole,
			fmt.Sprintf("unknown approver role %q", input.Role),
			domainerror.ErrInvalidRole,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.approverRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	approver := entity.NewApprover(uc.idGenerator.NewID(), input.Name, input.Email, passwordHash, input.Role, uc.clock.Now())

	if err := uc.approverRepo.Create(ctx, approver); err != nil {
		return nil, fmt.Errorf("failed to create approver: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, approver)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &RegisterApproverOutput{
		AccessToken: token,
		Approver:    approver,
	}, nil
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
